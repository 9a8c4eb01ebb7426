package server

import (
	"errors"

	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow. Self-follow and an
// already-existing edge both answer 400, matching the account API's
// error shape.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.followService.Follow(c.Context(), userID, targetID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"detail": "Now following user",
	})
}

// UnfollowUser handles POST /api/users/:id/unfollow.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.followService.Unfollow(c.Context(), userID, targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"detail": "Unfollowed user",
	})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	users, err := s.followService.GetFollowers(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	users, err := s.followService.GetFollowing(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(users)
}
