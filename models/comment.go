package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment statuses. Comments are auto-approved on creation; there is no
// pending state. Moderators can flag a comment as spam and restore it later.
const (
	CommentApproved = "approved"
	CommentSpam     = "spam"
)

// Comment represents a blog post comment
type Comment struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	PostID    string         `gorm:"not null;index" json:"post_id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null" json:"email"`
	Text      string         `gorm:"not null" json:"text"`
	Status    string         `gorm:"not null;default:'approved'" json:"status"`
	Replies   []Reply        `gorm:"foreignKey:CommentID" json:"replies"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// Reply is a moderator or author reply attached to a comment
type Reply struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CommentID string    `gorm:"not null;index" json:"comment_id"`
	Name      string    `gorm:"not null" json:"name"`
	Text      string    `gorm:"not null" json:"text"`
	Date      time.Time `json:"date"`
}

// TableName specifies the table name for the Reply model
func (Reply) TableName() string {
	return "comment_replies"
}
