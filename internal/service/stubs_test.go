package service

import (
	"context"
	"errors"

	"bookclub/internal/models"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getProfileFn       func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	updateRoleFn       func(context.Context, uint, models.Role) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.getProfileFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	return s.updateRoleFn(ctx, id, role)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getProfileFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithPostsFn: func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:           func(context.Context, *models.User) error { return nil },
		updateFn:           func(context.Context, *models.User) error { return nil },
		updateRoleFn:       func(context.Context, uint, models.Role) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		listFn:             func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	feedFn        func(context.Context, uint, int, int) ([]*models.Post, error)
	searchFn      func(context.Context, string, int, int, uint) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
	toggleLikeFn  func(context.Context, uint, uint) (bool, error)
	isLikedFn     func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(context.Context, *models.Post) error { return nil },
		getByIDFn:     func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listFn:        func(context.Context, int, int, uint) ([]*models.Post, error) { return nil, nil },
		feedFn:        func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		searchFn:      func(context.Context, string, int, int, uint) ([]*models.Post, error) { return nil, nil },
		updateFn:      func(context.Context, *models.Post) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
		toggleLikeFn:  func(context.Context, uint, uint) (bool, error) { return true, nil },
		isLikedFn:     func(context.Context, uint, uint) (bool, error) { return false, nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Comment) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	createFn         func(context.Context, uint, uint) error
	deleteFn         func(context.Context, uint, uint) error
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	getFollowersFn   func(context.Context, uint, int, int) ([]models.User, error)
	getFollowingFn   func(context.Context, uint, int, int) ([]models.User, error)
	getFollowedIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) error {
	return s.createFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followedID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) GetFollowedIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.getFollowedIDsFn(ctx, followerID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:         func(context.Context, uint, uint) error { return nil },
		deleteFn:         func(context.Context, uint, uint) error { return nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFollowersFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		getFollowingFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		getFollowedIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

type notifRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	getByIDFn         func(context.Context, uint) (*models.Notification, error)
	listByRecipientFn func(context.Context, uint, bool, int, int) ([]*models.Notification, error)
	countUnreadFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint) error
	markAllReadFn     func(context.Context, uint) error
}

func (s *notifRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notifRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notifRepoStub) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID, unreadOnly, limit, offset)
}
func (s *notifRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}
func (s *notifRepoStub) MarkRead(ctx context.Context, id uint) error {
	return s.markReadFn(ctx, id)
}
func (s *notifRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}

func noopNotifRepo() *notifRepoStub {
	return &notifRepoStub{
		createFn:          func(context.Context, *models.Notification) error { return nil },
		getByIDFn:         func(context.Context, uint) (*models.Notification, error) { return &models.Notification{}, nil },
		listByRecipientFn: func(context.Context, uint, bool, int, int) ([]*models.Notification, error) { return nil, nil },
		countUnreadFn:     func(context.Context, uint) (int64, error) { return 0, nil },
		markReadFn:        func(context.Context, uint) error { return nil },
		markAllReadFn:     func(context.Context, uint) error { return nil },
	}
}

// notifyRecorder captures notifications the services fan out.
type notifyRecorder struct {
	calls []NotifyInput
}

func (r *notifyRecorder) Notify(ctx context.Context, in NotifyInput) (*models.Notification, error) {
	r.calls = append(r.calls, in)
	return &models.Notification{}, nil
}

// failingNotifier rejects every notification, standing in for a
// notification store outage.
type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, NotifyInput) (*models.Notification, error) {
	return nil, errors.New("notification store down")
}

func adminChecker(adminIDs ...uint) func(context.Context, uint) (bool, error) {
	return func(_ context.Context, userID uint) (bool, error) {
		for _, id := range adminIDs {
			if id == userID {
				return true, nil
			}
		}
		return false, nil
	}
}
