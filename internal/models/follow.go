package models

import "time"

// Follow is a directed edge in the asymmetric follow graph: the follower
// follows the followed user. The (follower, followed) pair is unique; the
// database constraint, not application logic, is what prevents duplicate
// edges under concurrent requests.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
