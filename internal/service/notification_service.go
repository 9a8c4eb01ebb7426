// Package service contains the application's business logic, sitting
// between the HTTP handlers and the repositories.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"bookclub/internal/middleware"
	"bookclub/internal/models"
	"bookclub/internal/notifications"
	"bookclub/internal/observability"
	"bookclub/internal/repository"
)

// notificationPublisher is what the other services use to fan out
// notifications. NotificationService implements it; tests stub it.
type notificationPublisher interface {
	Notify(ctx context.Context, in NotifyInput) (*models.Notification, error)
}

type NotificationService struct {
	notifRepo repository.NotificationRepository
	notifier  *notifications.Notifier
}

// NotifyInput describes an event worth telling the recipient about:
// actor performed verb on target.
type NotifyInput struct {
	RecipientID uint
	ActorID     uint
	Verb        string
	TargetType  models.NotificationTarget
	TargetID    uint
}

// notifyBestEffort fans out a notification for a mutation that already
// committed. The notification is a side effect of that write: failures
// to persist or publish it are logged, never surfaced, so the caller's
// committed change does not come back to the client as an error.
func notifyBestEffort(ctx context.Context, notify notificationPublisher, in NotifyInput) {
	if notify == nil {
		return
	}
	if _, err := notify.Notify(ctx, in); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to record notification",
			slog.Uint64("recipient_id", uint64(in.RecipientID)),
			slog.String("verb", in.Verb),
			slog.Any("error", err))
	}
}

type ListNotificationsInput struct {
	UserID     uint
	UnreadOnly bool
	Limit      int
	Offset     int
}

func NewNotificationService(
	notifRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, notifier: notifier}
}

// Notify persists a notification and publishes it for real-time
// delivery. Users are never notified about their own actions; those
// calls return (nil, nil). Publish failures are logged, not returned:
// the triggering action already succeeded.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) (*models.Notification, error) {
	if in.RecipientID == in.ActorID {
		return nil, nil
	}
	if !in.TargetType.Valid() {
		return nil, models.NewValidationError("Invalid notification target type")
	}
	if in.Verb == "" {
		return nil, models.NewValidationError("Notification verb is required")
	}

	n := &models.Notification{
		RecipientID: in.RecipientID,
		ActorID:     in.ActorID,
		Verb:        in.Verb,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	observability.NotificationsPublished.WithLabelValues(in.Verb).Inc()

	if s.notifier != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			err = s.notifier.PublishUser(ctx, in.RecipientID, string(payload))
		}
		if err != nil {
			middleware.Logger.WarnContext(ctx, "Failed to publish notification",
				slog.Uint64("recipient_id", uint64(in.RecipientID)),
				slog.String("verb", in.Verb),
				slog.Any("error", err))
		}
	}

	return n, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, in ListNotificationsInput) ([]*models.Notification, error) {
	return s.notifRepo.ListByRecipient(ctx, in.UserID, in.UnreadOnly, in.Limit, in.Offset)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead marks a single notification read. Marking an already-read
// notification succeeds and changes nothing. Another user's notification
// reads as not-found so the endpoint does not reveal it exists.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	n, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != userID {
		return models.NewNotFoundError("Notification", notificationID)
	}
	return s.notifRepo.MarkRead(ctx, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}
