// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the application-level role assigned to a user.
type Role string

const (
	// RoleAdmin grants access to the admin dashboard and moderation actions.
	RoleAdmin Role = "admin"
	// RoleLibrarian grants access to the librarian dashboard and catalog curation.
	RoleLibrarian Role = "librarian"
	// RoleMember is the default role for registered users.
	RoleMember Role = "member"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

// User represents a registered user of the Bookclub application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	Role      Role           `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Posts     []Post         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`

	// FollowersCount and FollowingCount are not persisted; computed at query time.
	FollowersCount int `gorm:"->" json:"followers_count"`
	FollowingCount int `gorm:"->" json:"following_count"`
}
