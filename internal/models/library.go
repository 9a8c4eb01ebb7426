package models

import (
	"time"

	"gorm.io/gorm"
)

// Library represents a library holding a collection of books through the
// library_books join table.
type Library struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Books     []Book     `gorm:"many2many:library_books" json:"books,omitempty"`
	Librarian *Librarian `gorm:"foreignKey:LibraryID" json:"librarian,omitempty"`
}

// Librarian is the head librarian of exactly one library. The unique
// index on LibraryID makes the relationship one-to-one.
type Librarian struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	LibraryID uint      `gorm:"not null;uniqueIndex" json:"library_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
