package repository

import (
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowGetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	follower := seedUser(t, db, "sarah")
	author := seedUser(t, db, "leo")

	follow, created, err := repo.GetOrCreate(testCtx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, follow.ID)

	// The second call returns the existing row.
	again, created, err := repo.GetOrCreate(testCtx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, follow.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowGetMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	follower := seedUser(t, db, "sarah")
	author := seedUser(t, db, "leo")

	follow, err := repo.Get(testCtx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.Nil(t, follow)
}

func TestFollowDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	follower := seedUser(t, db, "sarah")
	author := seedUser(t, db, "leo")

	_, _, err := repo.GetOrCreate(testCtx, follower.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(testCtx, follower.ID, author.ID))

	follow, err := repo.Get(testCtx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.Nil(t, follow)

	// Deleting again fails: the row is assumed to exist.
	assert.Error(t, repo.Delete(testCtx, follower.ID, author.ID))
}

func TestFollowCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	a := seedUser(t, db, "sarah")
	b := seedUser(t, db, "leo")
	c := seedUser(t, db, "tolstoy")

	_, _, err := repo.GetOrCreate(testCtx, a.ID, c.ID)
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(testCtx, b.ID, c.ID)
	require.NoError(t, err)

	followers, err := repo.CountFollowers(testCtx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.CountFollowing(testCtx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}
