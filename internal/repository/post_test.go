package repository

import (
	"errors"
	"testing"
	"time"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostListOrdersByPubDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedUser(t, db, "sarah")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, db, author, "oldest", base)
	seedPost(t, db, author, "middle", base.Add(time.Hour))
	seedPost(t, db, author, "newest", base.Add(2*time.Hour))

	posts, err := repo.List(testCtx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "newest", posts[0].Text)
	assert.Equal(t, "oldest", posts[2].Text)
	assert.Equal(t, "sarah", posts[0].Author.Username)
}

func TestPostListByAuthorOrdersByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedUser(t, db, "sarah")
	other := seedUser(t, db, "leo")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// Later publish time but lower id: the profile feed sorts by id,
	// not publish time.
	seedPost(t, db, author, "first row", base.Add(time.Hour))
	seedPost(t, db, author, "second row", base)
	seedPost(t, db, other, "someone else", base)

	posts, err := repo.ListByAuthor(testCtx, author.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "second row", posts[0].Text)
	assert.Equal(t, "first row", posts[1].Text)
}

func TestPostListByGroup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedUser(t, db, "sarah")

	group := &models.Group{Title: "Cats", Slug: "cats", Description: "feline matters"}
	require.NoError(t, db.Create(group).Error)

	inGroup := &models.Post{Text: "grouped", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, db.Create(inGroup).Error)
	seedPost(t, db, author, "ungrouped", time.Now())

	posts, err := repo.ListByGroup(testCtx, group.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "grouped", posts[0].Text)

	count, err := repo.CountByGroup(testCtx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostListFollowing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	follower := seedUser(t, db, "sarah")
	followed := seedUser(t, db, "leo")
	stranger := seedUser(t, db, "tolstoy")

	require.NoError(t, db.Create(&models.Follow{UserID: follower.ID, AuthorID: followed.ID}).Error)

	seedPost(t, db, followed, "from leo", time.Now())
	seedPost(t, db, stranger, "from tolstoy", time.Now())
	seedPost(t, db, follower, "from sarah", time.Now())

	posts, err := repo.ListFollowing(testCtx, follower.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from leo", posts[0].Text)

	count, err := repo.CountFollowing(testCtx, follower.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostGetByAuthorAndID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedUser(t, db, "sarah")
	other := seedUser(t, db, "leo")
	post := seedPost(t, db, author, "mine", time.Now())

	found, err := repo.GetByAuthorAndID(testCtx, author.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	// The right post under the wrong author is a not-found.
	_, err = repo.GetByAuthorAndID(testCtx, other.ID, post.ID)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostGetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(testCtx, 42)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	author := seedUser(t, db, "sarah")
	post := seedPost(t, db, author, "draft", time.Now())

	post.Text = "revised"
	require.NoError(t, repo.Update(testCtx, post))

	fresh, err := repo.GetByID(testCtx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", fresh.Text)
}
