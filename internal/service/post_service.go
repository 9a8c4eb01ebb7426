package service

import (
	"context"

	"bookclub/internal/models"
	"bookclub/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	notify   notificationPublisher
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	notify notificationPublisher,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		notify:   notify,
		isAdmin:  isAdmin,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 300
	const maxContentLen = 50000 // 50K characters

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	post := &models.Post{
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	return s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// Feed returns recent posts authored by users the given user follows,
// newest first. The user's own posts are not included.
func (s *PostService) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.Feed(ctx, userID, limit, offset)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	const maxTitleLen = 300
	const maxContentLen = 50000

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post. The author may delete their own post;
// admins may delete any post.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own posts")
		}
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// ToggleLike likes the post if the user has not liked it, and removes
// the like otherwise. It returns the resulting liked state. The post
// author is notified best-effort on like, never on unlike.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if liked {
		notifyBestEffort(ctx, s.notify, NotifyInput{
			RecipientID: post.UserID,
			ActorID:     userID,
			Verb:        "liked",
			TargetType:  models.TargetPost,
			TargetID:    postID,
		})
	}
	return liked, nil
}
