package repository

import (
	"context"
	"testing"
	"time"

	"yatube/internal/database"
	"yatube/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testCtx = context.Background()

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedPost creates a post with an explicit publish time so ordering
// tests are deterministic.
func seedPost(t *testing.T, db *gorm.DB, author *models.User, text string, pubDate time.Time) *models.Post {
	t.Helper()

	post := &models.Post{Text: text, AuthorID: author.ID, PubDate: pubDate}
	require.NoError(t, db.Create(post).Error)
	return post
}
