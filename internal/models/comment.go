package models

import "time"

// Comment is append-only.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	PostID    string    `gorm:"size:64;not null;index" json:"post_id"`
	UserID    string    `gorm:"size:64;not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// CommentEntry is a comment joined with its author's display identity.
type CommentEntry struct {
	Comment
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
