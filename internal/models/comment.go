package models

import "time"

// Comment is a reader's note under a post. Comments are immutable once
// created; there is no edit or delete path.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"not null" json:"text"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	Post     Post   `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Created  time.Time `gorm:"autoCreateTime" json:"created"`
}
