package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookclub/internal/models"
	"bookclub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, query, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func notAdmin(context.Context, uint) (bool, error) { return false, nil }

func newPostTestApp(mockRepo *MockPostRepository, userID uint) *fiber.App {
	s := &Server{
		postRepo:    mockRepo,
		postService: service.NewPostService(mockRepo, nil, notAdmin),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/posts", s.CreatePost)
	app.Get("/posts/feed", s.GetFeed)
	app.Put("/posts/:id", s.UpdatePost)
	app.Delete("/posts/:id", s.DeletePost)
	app.Post("/posts/:id/like", s.ToggleLike)
	return app
}

func TestCreatePost(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"title":   "First read",
				"content": "Thoughts on a book",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				mockRepo.On("GetByID", mock.Anything, mock.Anything, uint(1)).
					Return(&models.Post{ID: 1, Title: "First read"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"title": "",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdatePostForeignOwner(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 2)

	// Post belongs to user 1; request comes from user 2.
	mockRepo.On("GetByID", mock.Anything, uint(5), uint(2)).
		Return(&models.Post{ID: 5, UserID: 1, Title: "Theirs", Content: "original"}, nil)

	body, _ := json.Marshal(map[string]string{"content": "hijacked"})
	req := httptest.NewRequest(http.MethodPut, "/posts/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeletePostOwner(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	mockRepo.On("GetByID", mock.Anything, uint(5), uint(1)).
		Return(&models.Post{ID: 5, UserID: 1}, nil)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/posts/5", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockRepo.AssertCalled(t, "Delete", mock.Anything, uint(5))
}

func TestToggleLikeResponse(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	mockRepo.On("GetByID", mock.Anything, uint(9), uint(1)).
		Return(&models.Post{ID: 9, UserID: 2, LikesCount: 1, Liked: true}, nil)
	mockRepo.On("ToggleLike", mock.Anything, uint(1), uint(9)).Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/posts/9/like", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Liked bool         `json:"liked"`
		Post  *models.Post `json:"post"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Liked)
	assert.Equal(t, uint(9), payload.Post.ID)
}

func TestGetFeed(t *testing.T) {
	mockRepo := new(MockPostRepository)
	app := newPostTestApp(mockRepo, 1)

	mockRepo.On("Feed", mock.Anything, uint(1), 10, 0).
		Return([]*models.Post{{ID: 2, UserID: 3, Title: "followed author post"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []*models.Post
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	assert.Len(t, posts, 1)
	assert.Equal(t, uint(3), posts[0].UserID)
}
