package models

import "time"

// Follow is a directed edge; the composite key keeps at most one per pair.
type Follow struct {
	FollowerID  string    `gorm:"primaryKey;size:64" json:"follower_id"`
	FollowingID string    `gorm:"primaryKey;size:64;index" json:"following_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

type Like struct {
	PostID    string    `gorm:"primaryKey;size:64" json:"post_id"`
	UserID    string    `gorm:"primaryKey;size:64;index" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type Bookmark struct {
	UserID    string    `gorm:"primaryKey;size:64" json:"user_id"`
	PostID    string    `gorm:"primaryKey;size:64;index" json:"post_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// ReadingHistory holds the latest visit per (user, post).
type ReadingHistory struct {
	UserID string    `gorm:"primaryKey;size:64" json:"user_id"`
	PostID string    `gorm:"primaryKey;size:64;index" json:"post_id"`
	ReadAt time.Time `gorm:"not null;index" json:"read_at"`
}

func (ReadingHistory) TableName() string {
	return "reading_history"
}
