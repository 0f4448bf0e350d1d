package models

import "time"

// Post is a published entry. The author is fixed at creation; only
// text, group and image may change afterwards.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"not null" json:"text"`
	Image    string `json:"image"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID  *uint  `json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	// PubDate is set once when the post is created.
	PubDate   time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	UpdatedAt time.Time `json:"updated_at"`
}
