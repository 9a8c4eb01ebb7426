package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookclub/internal/models"
)

func TestCommentServiceCreateMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewCommentService(noopCommentRepo(), posts, nil, adminChecker())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}

func TestCommentServiceCreateContentTooLong(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), nil, adminChecker())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  1,
		PostID:  2,
		Content: strings.Repeat("a", 10001),
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestCommentServiceCreateNotifiesPostAuthor(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 2, UserID: 10}, nil
	}
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 55
		return nil
	}

	rec := &notifyRecorder{}
	svc := NewCommentService(comments, posts, rec, adminChecker())
	if _, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "nice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.calls))
	}
	n := rec.calls[0]
	if n.RecipientID != 10 || n.ActorID != 1 || n.TargetType != models.TargetComment || n.TargetID != 55 {
		t.Fatalf("unexpected notification %#v", n)
	}
}

func TestCommentServiceCreateSurvivesNotifyFailure(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return &models.Post{ID: 2, UserID: 10}, nil
	}
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 55, UserID: 1, PostID: 2, Content: "nice"}, nil
	}

	svc := NewCommentService(comments, posts, failingNotifier{}, adminChecker())
	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 2, Content: "nice"})
	if err != nil {
		t.Fatalf("create must succeed once the comment is written, got %v", err)
	}
	if comment == nil || comment.ID != 55 {
		t.Fatalf("expected the stored comment back, got %#v", comment)
	}
}

func TestCommentServiceUpdateForeignComment(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 5, UserID: 10}, nil
	}

	svc := NewCommentService(comments, noopPostRepo(), nil, adminChecker())
	_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 11, CommentID: 5, Content: "edit"})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNAUTHORIZED" {
		t.Fatalf("expected unauthorized app error, got %#v", err)
	}
}

func TestCommentServiceDeleteAdminOverride(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 5, UserID: 10}, nil
	}
	deleted := false
	comments.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewCommentService(comments, noopPostRepo(), nil, adminChecker(99))
	if err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 99, CommentID: 5}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("admin delete must reach the repository")
	}
}
