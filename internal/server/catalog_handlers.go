package server

import (
	"strings"

	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBooks handles GET /api/books (public).
func (s *Server) GetBooks(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	books, err := s.catalogService.ListBooks(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(books)
}

// GetBook handles GET /api/books/:id
func (s *Server) GetBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.catalogService.GetBook(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(book)
}

// SearchBooks handles GET /api/books/search?q=
func (s *Server) SearchBooks(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	page := parsePagination(c, 20)

	books, err := s.catalogService.SearchBooks(c.Context(), q, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(books)
}

// CreateBook handles POST /api/books. A publication year beyond the
// current calendar year answers 400 with the offending field named.
func (s *Server) CreateBook(c *fiber.Ctx) error {
	var req struct {
		Title           string `json:"title"`
		PublicationYear int    `json:"publication_year"`
		AuthorID        uint   `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	book, err := s.catalogService.CreateBook(c.Context(), service.CreateBookInput{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(book)
}

// UpdateBook handles PUT and PATCH /api/books/:id
func (s *Server) UpdateBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title           string `json:"title"`
		PublicationYear int    `json:"publication_year"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	book, err := s.catalogService.UpdateBook(c.Context(), service.UpdateBookInput{
		BookID:          id,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(book)
}

// DeleteBook handles DELETE /api/books/:id
func (s *Server) DeleteBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.catalogService.DeleteBook(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetAuthors handles GET /api/authors (public).
func (s *Server) GetAuthors(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	authors, err := s.catalogService.ListAuthors(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(authors)
}

// GetAuthor handles GET /api/authors/:id with the author's books nested.
func (s *Server) GetAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	author, err := s.catalogService.GetAuthorWithBooks(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(author)
}

// GetAuthorBooks handles GET /api/authors/:id/books
func (s *Server) GetAuthorBooks(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	books, err := s.catalogService.ListBooksByAuthor(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(books)
}

// CreateAuthor handles POST /api/authors
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.catalogService.CreateAuthor(c.Context(), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(author)
}

// UpdateAuthor handles PUT /api/authors/:id
func (s *Server) UpdateAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	author, err := s.catalogService.UpdateAuthor(c.Context(), id, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(author)
}

// DeleteAuthor handles DELETE /api/authors/:id and removes the author's
// books with them.
func (s *Server) DeleteAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.catalogService.DeleteAuthor(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetLibraries handles GET /api/libraries (public).
func (s *Server) GetLibraries(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	libraries, err := s.catalogService.ListLibraries(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(libraries)
}

// GetLibrary handles GET /api/libraries/:id with books and librarian preloaded.
func (s *Server) GetLibrary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	library, err := s.catalogService.GetLibrary(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(library)
}

// CreateLibrary handles POST /api/libraries
func (s *Server) CreateLibrary(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	library, err := s.catalogService.CreateLibrary(c.Context(), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(library)
}

// UpdateLibrary handles PUT /api/libraries/:id
func (s *Server) UpdateLibrary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	library, err := s.catalogService.UpdateLibrary(c.Context(), id, req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(library)
}

// DeleteLibrary handles DELETE /api/libraries/:id
func (s *Server) DeleteLibrary(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.catalogService.DeleteLibrary(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AttachBook handles POST /api/libraries/:id/books/:bookId. Attaching a
// book the library already holds is a no-op.
func (s *Server) AttachBook(c *fiber.Ctx) error {
	libraryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	bookID, err := s.parseID(c, "bookId")
	if err != nil {
		return nil
	}

	if err := s.catalogService.AttachBook(c.Context(), libraryID, bookID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"detail": "Book added to library",
	})
}

// DetachBook handles DELETE /api/libraries/:id/books/:bookId
func (s *Server) DetachBook(c *fiber.Ctx) error {
	libraryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	bookID, err := s.parseID(c, "bookId")
	if err != nil {
		return nil
	}

	if err := s.catalogService.DetachBook(c.Context(), libraryID, bookID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetLibrarian handles GET /api/libraries/:id/librarian
func (s *Server) GetLibrarian(c *fiber.Ctx) error {
	libraryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	librarian, err := s.catalogService.GetLibrarian(c.Context(), libraryID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(librarian)
}

// AssignLibrarian handles PUT /api/libraries/:id/librarian. A library
// has at most one head librarian; an occupied library answers 409.
func (s *Server) AssignLibrarian(c *fiber.Ctx) error {
	libraryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	librarian, err := s.catalogService.AssignLibrarian(c.Context(), service.AssignLibrarianInput{
		LibraryID: libraryID,
		Name:      req.Name,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(librarian)
}

// RemoveLibrarian handles DELETE /api/libraries/:id/librarian
func (s *Server) RemoveLibrarian(c *fiber.Ctx) error {
	libraryID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.catalogService.RemoveLibrarian(c.Context(), libraryID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
