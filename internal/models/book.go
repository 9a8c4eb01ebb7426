package models

import (
	"time"

	"gorm.io/gorm"
)

// Author represents a book author. Deleting an author cascades to their
// books.
type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Books []Book `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

// Book represents a book in the catalog. An author cannot have two books
// with the same title; the unique index enforces that.
type Book struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"not null;uniqueIndex:idx_author_title" json:"title"`
	PublicationYear int            `gorm:"not null" json:"publication_year"`
	AuthorID        uint           `gorm:"not null;uniqueIndex:idx_author_title" json:"author_id"`
	Author          *Author        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Libraries []Library `gorm:"many2many:library_books" json:"-"`
}
