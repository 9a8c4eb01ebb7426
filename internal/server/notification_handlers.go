package server

import (
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications (owner only, newest first).
// ?unread=true restricts the page to unread notifications.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	notifs, err := s.notifService.ListNotifications(c.Context(), service.ListNotificationsInput{
		UserID:     userID,
		UnreadOnly: c.QueryBool("unread", false),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(notifs)
}

// GetUnreadNotificationCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadNotificationCount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	count, err := s.notifService.CountUnread(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"unread": count,
	})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/mark-read.
// Idempotent; another user's notification reads as 404.
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.notifService.MarkRead(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"detail": "Notification marked as read",
	})
}

// MarkAllNotificationsRead handles PATCH /api/notifications/mark-read
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.notifService.MarkAllRead(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"detail": "All notifications marked as read",
	})
}
