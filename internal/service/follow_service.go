package service

import (
	"context"
	"errors"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notify     notificationPublisher
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notify notificationPublisher,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notify:     notify,
	}
}

// Follow creates a follow edge from follower to followed and notifies
// the followed user best-effort. Following someone already followed is
// a conflict; the unique index on the edge decides the winner under
// concurrency.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return models.NewConflictError("Already following this user")
		}
		return err
	}

	notifyBestEffort(ctx, s.notify, NotifyInput{
		RecipientID: followedID,
		ActorID:     followerID,
		Verb:        "followed",
		TargetType:  models.TargetUser,
		TargetID:    followerID,
	})
	return nil
}

// Unfollow removes the follow edge. Unfollowing someone not followed is
// a not-found, not a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.NewValidationError("Cannot unfollow yourself")
	}
	if err := s.followRepo.Delete(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrNotFollowing) {
			return models.NewNotFoundError("Follow", followedID)
		}
		return err
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followedID)
}

func (s *FollowService) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, userID, limit, offset)
}

func (s *FollowService) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, userID, limit, offset)
}
