package service

import (
	"context"
	"errors"

	"bookclub/internal/models"
	"bookclub/internal/repository"
	"bookclub/internal/validation"
)

// CatalogService covers authors, books, libraries, and librarian
// assignment. Write operations are role-gated at the HTTP layer.
type CatalogService struct {
	authorRepo  repository.AuthorRepository
	bookRepo    repository.BookRepository
	libraryRepo repository.LibraryRepository
}

type CreateBookInput struct {
	Title           string
	PublicationYear int
	AuthorID        uint
}

type UpdateBookInput struct {
	BookID          uint
	Title           string
	PublicationYear int
}

type AssignLibrarianInput struct {
	LibraryID uint
	Name      string
}

func NewCatalogService(
	authorRepo repository.AuthorRepository,
	bookRepo repository.BookRepository,
	libraryRepo repository.LibraryRepository,
) *CatalogService {
	return &CatalogService{
		authorRepo:  authorRepo,
		bookRepo:    bookRepo,
		libraryRepo: libraryRepo,
	}
}

func (s *CatalogService) CreateAuthor(ctx context.Context, name string) (*models.Author, error) {
	if name == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	author := &models.Author{Name: name}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *CatalogService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	return s.authorRepo.GetByID(ctx, id)
}

// GetAuthorWithBooks returns the author and all of their books.
func (s *CatalogService) GetAuthorWithBooks(ctx context.Context, id uint) (*models.Author, error) {
	return s.authorRepo.GetByIDWithBooks(ctx, id)
}

func (s *CatalogService) ListAuthors(ctx context.Context, limit, offset int) ([]models.Author, error) {
	return s.authorRepo.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateAuthor(ctx context.Context, id uint, name string) (*models.Author, error) {
	if name == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	author.Name = name
	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor removes an author and all of their books.
func (s *CatalogService) DeleteAuthor(ctx context.Context, id uint) error {
	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.authorRepo.Delete(ctx, id)
}

// CreateBook adds a book to the catalog. The publication year may not be
// in the future, and an author cannot have two books with the same
// title.
func (s *CatalogService) CreateBook(ctx context.Context, in CreateBookInput) (*models.Book, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Book title is required")
	}
	if err := validation.ValidatePublicationYear(in.PublicationYear); err != nil {
		return nil, models.NewFieldValidationError("publication_year", err.Error())
	}
	if _, err := s.authorRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:           in.Title,
		PublicationYear: in.PublicationYear,
		AuthorID:        in.AuthorID,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, models.NewConflictError("This author already has a book with that title")
		}
		return nil, err
	}
	return s.bookRepo.GetByID(ctx, book.ID)
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListBooks(ctx context.Context, limit, offset int) ([]models.Book, error) {
	return s.bookRepo.List(ctx, limit, offset)
}

func (s *CatalogService) ListBooksByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Book, error) {
	if _, err := s.authorRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.bookRepo.ListByAuthor(ctx, authorID, limit, offset)
}

func (s *CatalogService) SearchBooks(ctx context.Context, query string, limit, offset int) ([]models.Book, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.bookRepo.Search(ctx, query, limit, offset)
}

func (s *CatalogService) UpdateBook(ctx context.Context, in UpdateBookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		book.Title = in.Title
	}
	if in.PublicationYear != 0 {
		if err := validation.ValidatePublicationYear(in.PublicationYear); err != nil {
			return nil, models.NewFieldValidationError("publication_year", err.Error())
		}
		book.PublicationYear = in.PublicationYear
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			return nil, models.NewConflictError("This author already has a book with that title")
		}
		return nil, err
	}
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id uint) error {
	return s.bookRepo.Delete(ctx, id)
}

func (s *CatalogService) CreateLibrary(ctx context.Context, name string) (*models.Library, error) {
	if name == "" {
		return nil, models.NewValidationError("Library name is required")
	}
	library := &models.Library{Name: name}
	if err := s.libraryRepo.Create(ctx, library); err != nil {
		return nil, err
	}
	return library, nil
}

// GetLibrary returns the library with its books and librarian loaded.
func (s *CatalogService) GetLibrary(ctx context.Context, id uint) (*models.Library, error) {
	return s.libraryRepo.GetByID(ctx, id)
}

func (s *CatalogService) ListLibraries(ctx context.Context, limit, offset int) ([]models.Library, error) {
	return s.libraryRepo.List(ctx, limit, offset)
}

func (s *CatalogService) UpdateLibrary(ctx context.Context, id uint, name string) (*models.Library, error) {
	if name == "" {
		return nil, models.NewValidationError("Library name is required")
	}
	library, err := s.libraryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	library.Name = name
	if err := s.libraryRepo.Update(ctx, library); err != nil {
		return nil, err
	}
	return library, nil
}

func (s *CatalogService) DeleteLibrary(ctx context.Context, id uint) error {
	return s.libraryRepo.Delete(ctx, id)
}

// AttachBook adds a book to a library's collection. Attaching a book the
// library already holds is a no-op.
func (s *CatalogService) AttachBook(ctx context.Context, libraryID, bookID uint) error {
	if _, err := s.libraryRepo.GetByID(ctx, libraryID); err != nil {
		return err
	}
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return err
	}
	return s.libraryRepo.AttachBook(ctx, libraryID, bookID)
}

// DetachBook removes a book from a library's collection. Detaching a
// book the library does not hold is a not-found.
func (s *CatalogService) DetachBook(ctx context.Context, libraryID, bookID uint) error {
	if _, err := s.libraryRepo.GetByID(ctx, libraryID); err != nil {
		return err
	}
	if err := s.libraryRepo.DetachBook(ctx, libraryID, bookID); err != nil {
		if errors.Is(err, repository.ErrBookNotInLibrary) {
			return models.NewNotFoundError("Book in library", bookID)
		}
		return err
	}
	return nil
}

// AssignLibrarian sets a library's head librarian. A library has at most
// one; assigning to an occupied library is a conflict.
func (s *CatalogService) AssignLibrarian(ctx context.Context, in AssignLibrarianInput) (*models.Librarian, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Librarian name is required")
	}
	if _, err := s.libraryRepo.GetByID(ctx, in.LibraryID); err != nil {
		return nil, err
	}

	librarian := &models.Librarian{
		Name:      in.Name,
		LibraryID: in.LibraryID,
	}
	if err := s.libraryRepo.AssignLibrarian(ctx, librarian); err != nil {
		if errors.Is(err, repository.ErrLibrarianAssigned) {
			return nil, models.NewConflictError("Library already has a librarian")
		}
		return nil, err
	}
	return librarian, nil
}

func (s *CatalogService) GetLibrarian(ctx context.Context, libraryID uint) (*models.Librarian, error) {
	return s.libraryRepo.GetLibrarian(ctx, libraryID)
}

func (s *CatalogService) RemoveLibrarian(ctx context.Context, libraryID uint) error {
	return s.libraryRepo.RemoveLibrarian(ctx, libraryID)
}
