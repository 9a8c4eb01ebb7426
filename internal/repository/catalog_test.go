package repository

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookRepository_DuplicateTitlePerAuthor(t *testing.T) {
	db := setupSQLiteDB(t)
	authorRepo := NewAuthorRepository(db)
	bookRepo := NewBookRepository(db)
	ctx := context.Background()

	author := &models.Author{Name: "Ursula K. Le Guin"}
	require.NoError(t, authorRepo.Create(ctx, author))
	other := &models.Author{Name: "Someone Else"}
	require.NoError(t, authorRepo.Create(ctx, other))

	first := &models.Book{Title: "The Dispossessed", PublicationYear: 1974, AuthorID: author.ID}
	require.NoError(t, bookRepo.Create(ctx, first))

	dup := &models.Book{Title: "The Dispossessed", PublicationYear: 1974, AuthorID: author.ID}
	err := bookRepo.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	// Same title under a different author is fine.
	same := &models.Book{Title: "The Dispossessed", PublicationYear: 1999, AuthorID: other.ID}
	assert.NoError(t, bookRepo.Create(ctx, same))
}

func TestAuthorRepository_DeleteCascadesBooks(t *testing.T) {
	db := setupSQLiteDB(t)
	authorRepo := NewAuthorRepository(db)
	bookRepo := NewBookRepository(db)
	ctx := context.Background()

	author := &models.Author{Name: "Iain Banks"}
	require.NoError(t, authorRepo.Create(ctx, author))
	book := &models.Book{Title: "The Wasp Factory", PublicationYear: 1984, AuthorID: author.ID}
	require.NoError(t, bookRepo.Create(ctx, book))

	require.NoError(t, authorRepo.Delete(ctx, author.ID))

	books, err := bookRepo.ListByAuthor(ctx, author.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestLibraryRepository_AttachDetach(t *testing.T) {
	db := setupSQLiteDB(t)
	authorRepo := NewAuthorRepository(db)
	bookRepo := NewBookRepository(db)
	libRepo := NewLibraryRepository(db)
	ctx := context.Background()

	author := &models.Author{Name: "Ann Leckie"}
	require.NoError(t, authorRepo.Create(ctx, author))
	book := &models.Book{Title: "Ancillary Justice", PublicationYear: 2013, AuthorID: author.ID}
	require.NoError(t, bookRepo.Create(ctx, book))
	library := &models.Library{Name: "Central"}
	require.NoError(t, libRepo.Create(ctx, library))

	require.NoError(t, libRepo.AttachBook(ctx, library.ID, book.ID))
	// Attaching again is a no-op, not an error.
	require.NoError(t, libRepo.AttachBook(ctx, library.ID, book.ID))

	got, err := libRepo.GetByID(ctx, library.ID)
	require.NoError(t, err)
	assert.Len(t, got.Books, 1)

	require.NoError(t, libRepo.DetachBook(ctx, library.ID, book.ID))

	err = libRepo.DetachBook(ctx, library.ID, book.ID)
	assert.ErrorIs(t, err, ErrBookNotInLibrary)
}

func TestLibraryRepository_LibrarianOneToOne(t *testing.T) {
	db := setupSQLiteDB(t)
	libRepo := NewLibraryRepository(db)
	ctx := context.Background()

	library := &models.Library{Name: "Branch"}
	require.NoError(t, libRepo.Create(ctx, library))

	first := &models.Librarian{Name: "Marian", LibraryID: library.ID}
	require.NoError(t, libRepo.AssignLibrarian(ctx, first))

	second := &models.Librarian{Name: "Evelyn", LibraryID: library.ID}
	err := libRepo.AssignLibrarian(ctx, second)
	assert.ErrorIs(t, err, ErrLibrarianAssigned)

	got, err := libRepo.GetLibrarian(ctx, library.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marian", got.Name)

	require.NoError(t, libRepo.RemoveLibrarian(ctx, library.ID))
	require.NoError(t, libRepo.AssignLibrarian(ctx, second))
}
