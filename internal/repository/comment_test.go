package repository

import (
	"context"
	"regexp"
	"testing"

	"bookclub/internal/cache"
	"bookclub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Content: "Nice post!", PostID: 1, UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_WritesInvalidateCachedPost(t *testing.T) {
	db := setupSQLiteDB(t)
	mr := setupCacheRedis(t)
	postRepo := NewPostRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice", "bob")
	post := seedPost(t, postRepo, users[0].ID, "Cached")

	// Anonymous reads share one cached post detail.
	got, err := postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentsCount)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	comment := &models.Comment{Content: "hi", UserID: users[1].ID, PostID: post.ID}
	require.NoError(t, repo.Create(ctx, comment))
	assert.False(t, mr.Exists(cache.PostKey(post.ID)), "new comment drops the cached detail")

	got, err = postRepo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	require.NoError(t, repo.Delete(ctx, comment.ID))
	assert.False(t, mr.Exists(cache.PostKey(post.ID)), "deleted comment drops the cached detail")
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE post_id = $1 AND "comments"."deleted_at" IS NULL ORDER BY created_at asc LIMIT $2`)).
		WithArgs(1, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "user_id"}).
			AddRow(1, "Comment 1", 101).
			AddRow(2, "Comment 2", 102))

	// Preload User for each comment
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2) AND "users"."deleted_at" IS NULL`)).
		WithArgs(101, 102).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "user101").
			AddRow(102, "user102"))

	comments, err := repo.ListByPost(ctx, 1, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "Comment 1", comments[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}
