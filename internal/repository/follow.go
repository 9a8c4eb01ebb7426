// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"bookclub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow graph operations.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID uint) error
	Delete(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	GetFollowedIDs(ctx context.Context, followerID uint) ([]uint, error)
}

// ErrAlreadyFollowing is returned when the follow edge already exists.
var ErrAlreadyFollowing = errors.New("already following")

// ErrNotFollowing is returned when an unfollow finds no edge to remove.
var ErrNotFollowing = errors.New("not following")

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge, relying on the unique index to arbitrate
// concurrent duplicates: ON CONFLICT DO NOTHING plus RowsAffected == 0
// means someone else (or an earlier request) already created it.
func (r *followRepository) Create(ctx context.Context, followerID, followedID uint) error {
	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyFollowing
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followed_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followed_id").
		Where("f.follower_id = ?", userID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) GetFollowedIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
