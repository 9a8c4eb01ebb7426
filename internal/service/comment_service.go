package service

import (
	"context"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notify      notificationPublisher
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	notify notificationPublisher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notify:      notify,
		isAdmin:     isAdmin,
	}
}

const maxCommentLen = 10000

// CreateComment adds a comment to an existing post and notifies the
// post's author best-effort.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:  in.UserID,
		PostID:  in.PostID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	notifyBestEffort(ctx, s.notify, NotifyInput{
		RecipientID: post.UserID,
		ActorID:     in.UserID,
		Verb:        "commented on",
		TargetType:  models.TargetComment,
		TargetID:    comment.ID,
	})

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments oldest-first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own comments")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. The author may delete their own
// comment; admins may delete any comment.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.UserID != in.UserID {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own comments")
		}
	}
	return s.commentRepo.Delete(ctx, in.CommentID)
}
