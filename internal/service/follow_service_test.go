package service

import (
	"context"
	"errors"
	"testing"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

func TestFollowServiceFollowSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), nil)
	err := svc.Follow(context.Background(), 3, 3)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestFollowServiceAlreadyFollowingIsConflict(t *testing.T) {
	repo := noopFollowRepo()
	repo.createFn = func(context.Context, uint, uint) error {
		return repository.ErrAlreadyFollowing
	}

	svc := NewFollowService(repo, noopUserRepo(), nil)
	err := svc.Follow(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFLICT" {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestFollowServiceFollowNotifiesFollowed(t *testing.T) {
	rec := &notifyRecorder{}
	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), rec)

	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.calls))
	}
	n := rec.calls[0]
	if n.RecipientID != 2 || n.ActorID != 1 || n.Verb != "followed" || n.TargetType != models.TargetUser {
		t.Fatalf("unexpected notification %#v", n)
	}
}

func TestFollowServiceFollowSurvivesNotifyFailure(t *testing.T) {
	created := 0
	repo := noopFollowRepo()
	repo.createFn = func(context.Context, uint, uint) error {
		created++
		return nil
	}

	svc := NewFollowService(repo, noopUserRepo(), failingNotifier{})
	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("follow must succeed once the edge is written, got %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 edge write, got %d", created)
	}
}

func TestFollowServiceFollowUnknownUser(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	rec := &notifyRecorder{}
	svc := NewFollowService(noopFollowRepo(), users, rec)
	err := svc.Follow(context.Background(), 1, 99)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatal("no notification expected for failed follow")
	}
}

func TestFollowServiceUnfollowMissingEdge(t *testing.T) {
	repo := noopFollowRepo()
	repo.deleteFn = func(context.Context, uint, uint) error {
		return repository.ErrNotFollowing
	}

	svc := NewFollowService(repo, noopUserRepo(), nil)
	err := svc.Unfollow(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}
