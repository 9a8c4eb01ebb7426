// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"bookclub/internal/cache"
	"bookclub/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context, recipientID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUnreadCount(ctx, n.RecipientID)
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).Preload("Actor").First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Notification", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &n, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	q := r.db.WithContext(ctx).
		Preload("Actor").
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.UnreadCountKey(recipientID), &count, cache.NotifCountTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Notification{}).
			Where("recipient_id = ? AND is_read = ?", recipientID, false).
			Count(&count).Error
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds
// without complaint. Only an unknown ID is an error.
func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if count == 0 {
			return models.NewNotFoundError("Notification", id)
		}
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUnreadCount(ctx, recipientID)
	return nil
}
