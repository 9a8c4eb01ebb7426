package server

import (
	"bookclub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboard handles GET /api/dashboard/admin. Route middleware has
// already verified the admin role.
func (s *Server) AdminDashboard(c *fiber.Ctx) error {
	ctx := c.Context()

	var userCount, postCount, bookCount int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&postCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Book{}).Count(&bookCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"dashboard": "admin",
		"stats": fiber.Map{
			"users": userCount,
			"posts": postCount,
			"books": bookCount,
		},
	})
}

// LibrarianDashboard handles GET /api/dashboard/librarian.
func (s *Server) LibrarianDashboard(c *fiber.Ctx) error {
	ctx := c.Context()

	var bookCount, authorCount, libraryCount int64
	if err := s.db.WithContext(ctx).Model(&models.Book{}).Count(&bookCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Author{}).Count(&authorCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if err := s.db.WithContext(ctx).Model(&models.Library{}).Count(&libraryCount).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"dashboard": "librarian",
		"stats": fiber.Map{
			"books":     bookCount,
			"authors":   authorCount,
			"libraries": libraryCount,
		},
	})
}

// MemberDashboard handles GET /api/dashboard/member.
func (s *Server) MemberDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	unread, err := s.notifService.CountUnread(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"dashboard": "member",
		"profile":   user,
		"stats": fiber.Map{
			"followers":            user.FollowersCount,
			"following":            user.FollowingCount,
			"unread_notifications": unread,
		},
	})
}
