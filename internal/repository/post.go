// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"bookclub/internal/cache"
	"bookclub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, err error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
		cache.InvalidateFeeds(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	var err error
	if currentUserID == 0 {
		// Anonymous reads share one cache entry; viewer-specific liked
		// flags make authed reads uncacheable here.
		err = cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
			return r.applyPostDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				First(&post, id).Error
		})
	} else {
		err = r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error
	}

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// List is cached per viewer and page; the liked flag makes entries
// viewer-specific. Post writes invalidate the whole key space, and the
// short ListTTL bounds staleness of like and comment counts between
// invalidations.
func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostsListKey(currentUserID, limit, offset), &posts, cache.ListTTL, func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	return posts, err
}

// Feed returns posts authored by users the given user follows, newest
// first. Cached per user and page with a short TTL; post writes also
// invalidate the feed key space.
func (r *postRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedKey(userID, limit, offset), &posts, cache.FeedTTL, func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), userID).
			Preload("User").
			Where("user_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", userID).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
	})
	return posts, err
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("title ILIKE ? OR content ILIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	cache.InvalidatePostsList(ctx)
	cache.InvalidateFeeds(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	cache.InvalidateFeeds(ctx)
	return nil
}

// ToggleLike flips the like state inside one transaction. The insert uses
// ON CONFLICT DO NOTHING so the unique index on (user_id, post_id) is the
// arbiter: RowsAffected == 0 means the like already existed, so the toggle
// removes it instead. Two racing toggles resolve to one insert and one
// delete rather than an error.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: userID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = true
			return nil
		}
		liked = false
		return tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{}).Error
	})
	if err != nil {
		return false, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return liked, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
