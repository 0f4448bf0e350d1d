package models

import (
	"fmt"
	"time"
)

// Follow records that User wants Author's posts in their feed.
// A (user, author) pair exists at most once.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`
	User     User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

func (f *Follow) String() string {
	return fmt.Sprintf("%s followed by %s", f.Author.Username, f.User.Username)
}
