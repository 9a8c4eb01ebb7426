// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"bookclub/internal/cache"
	"bookclub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuthorRepository defines persistence operations for authors.
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	GetByIDWithBooks(ctx context.Context, id uint) (*models.Author, error)
	List(ctx context.Context, limit, offset int) ([]models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id uint) error
}

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository.
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := cache.Aside(ctx, cache.AuthorKey(id), &author, cache.BookTTL, func() error {
		if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Author", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *authorRepository) GetByIDWithBooks(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).Preload("Books").First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, limit, offset int) ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	if err := r.db.WithContext(ctx).Save(author).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.AuthorKey(author.ID))
	return nil
}

// Delete soft-deletes the author and their books together. The FK cascade
// only covers hard deletes, so the books are removed explicitly.
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Author{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Author", id)
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Book{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.AuthorKey(id))
	return nil
}

// BookRepository defines persistence operations for books.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	List(ctx context.Context, limit, offset int) ([]models.Book, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Book, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
}

// ErrDuplicateTitle is returned when an author already has a book with the same title.
var ErrDuplicateTitle = errors.New("duplicate title for author")

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateTitle
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := cache.Aside(ctx, cache.BookKey(id), &book, cache.BookTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Author").First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Book", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return books, nil
}

func (r *bookRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return books, nil
}

func (r *bookRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	like := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title ILIKE ?", like).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return books, nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateTitle
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBook(ctx, book.ID)
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Book", id)
	}
	cache.InvalidateBook(ctx, id)
	return nil
}

// LibraryRepository defines persistence operations for libraries, their
// book collections, and librarian assignment.
type LibraryRepository interface {
	Create(ctx context.Context, library *models.Library) error
	GetByID(ctx context.Context, id uint) (*models.Library, error)
	List(ctx context.Context, limit, offset int) ([]models.Library, error)
	Update(ctx context.Context, library *models.Library) error
	Delete(ctx context.Context, id uint) error
	AttachBook(ctx context.Context, libraryID, bookID uint) error
	DetachBook(ctx context.Context, libraryID, bookID uint) error
	AssignLibrarian(ctx context.Context, librarian *models.Librarian) error
	GetLibrarian(ctx context.Context, libraryID uint) (*models.Librarian, error)
	RemoveLibrarian(ctx context.Context, libraryID uint) error
}

// ErrLibrarianAssigned is returned when a library already has a head librarian.
var ErrLibrarianAssigned = errors.New("library already has a librarian")

// ErrBookNotInLibrary is returned when detaching a book the library does not hold.
var ErrBookNotInLibrary = errors.New("book not in library")

type libraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new library repository.
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Create(ctx context.Context, library *models.Library) error {
	if err := r.db.WithContext(ctx).Create(library).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *libraryRepository) GetByID(ctx context.Context, id uint) (*models.Library, error) {
	var library models.Library
	if err := r.db.WithContext(ctx).
		Preload("Books").
		Preload("Books.Author").
		Preload("Librarian").
		First(&library, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Library", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &library, nil
}

func (r *libraryRepository) List(ctx context.Context, limit, offset int) ([]models.Library, error) {
	var libraries []models.Library
	if err := r.db.WithContext(ctx).
		Preload("Librarian").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&libraries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return libraries, nil
}

func (r *libraryRepository) Update(ctx context.Context, library *models.Library) error {
	if err := r.db.WithContext(ctx).Save(library).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateLibrary(ctx, library.ID)
	return nil
}

func (r *libraryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Library{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Library", id)
	}
	cache.InvalidateLibrary(ctx, id)
	return nil
}

// AttachBook adds the book to the library's collection. Attaching a book
// the library already holds is a no-op thanks to the join table's primary key.
func (r *libraryRepository) AttachBook(ctx context.Context, libraryID, bookID uint) error {
	res := r.db.WithContext(ctx).
		Exec("INSERT INTO library_books (library_id, book_id) VALUES (?, ?) ON CONFLICT DO NOTHING", libraryID, bookID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	cache.InvalidateLibrary(ctx, libraryID)
	return nil
}

func (r *libraryRepository) DetachBook(ctx context.Context, libraryID, bookID uint) error {
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM library_books WHERE library_id = ? AND book_id = ?", libraryID, bookID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookNotInLibrary
	}
	cache.InvalidateLibrary(ctx, libraryID)
	return nil
}

// AssignLibrarian creates the head librarian for a library. The unique
// index on library_id keeps the relationship one-to-one.
func (r *libraryRepository) AssignLibrarian(ctx context.Context, librarian *models.Librarian) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(librarian)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLibrarianAssigned
	}
	cache.InvalidateLibrary(ctx, librarian.LibraryID)
	return nil
}

func (r *libraryRepository) GetLibrarian(ctx context.Context, libraryID uint) (*models.Librarian, error) {
	var librarian models.Librarian
	if err := r.db.WithContext(ctx).Where("library_id = ?", libraryID).First(&librarian).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Librarian", libraryID)
		}
		return nil, models.NewInternalError(err)
	}
	return &librarian, nil
}

func (r *libraryRepository) RemoveLibrarian(ctx context.Context, libraryID uint) error {
	res := r.db.WithContext(ctx).Where("library_id = ?", libraryID).Delete(&models.Librarian{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Librarian", libraryID)
	}
	cache.InvalidateLibrary(ctx, libraryID)
	return nil
}
