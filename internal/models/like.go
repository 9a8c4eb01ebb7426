package models

import "time"

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique; the toggle
// operation leans on that constraint rather than a read-then-write check.
// Likes are hard-deleted join rows with no lifecycle of their own.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
