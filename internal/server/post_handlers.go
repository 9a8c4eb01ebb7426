package server

import (
	"strings"

	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts (public, newest first).
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 10)
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// SearchPosts handles GET /api/posts/search?q=
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	page := parsePagination(c, 10)
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.postService.SearchPosts(c.Context(), q, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetFeed handles GET /api/posts/feed: posts authored by users the
// actor follows, newest first. An empty following set yields an empty
// page, not an error.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 10)

	posts, err := s.postService.Feed(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// CreatePost handles POST /api/posts. The author is always the
// authenticated user; the body cannot override it.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id (owner only).
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  userID,
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (owner or admin).
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like. The response carries the
// refreshed post so the client sees the new liked state and count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	liked, err := s.postService.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"liked": liked,
		"post":  post,
	})
}
