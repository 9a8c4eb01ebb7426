package repository

import (
	"context"
	"testing"

	"bookclub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_MarkReadIdempotent(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice", "bob")

	n := &models.Notification{
		RecipientID: users[0].ID,
		ActorID:     users[1].ID,
		Verb:        "followed",
		TargetType:  models.TargetUser,
		TargetID:    users[0].ID,
	}
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkRead(ctx, n.ID))
	// Marking again succeeds silently.
	require.NoError(t, repo.MarkRead(ctx, n.ID))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestNotificationRepository_MarkReadUnknownID(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewNotificationRepository(db)

	err := repo.MarkRead(context.Background(), 999)
	assert.Error(t, err)
}

func TestNotificationRepository_ListAndCount(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	users := seedUsers(t, db, "alice", "bob")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			RecipientID: users[0].ID,
			ActorID:     users[1].ID,
			Verb:        "liked",
			TargetType:  models.TargetPost,
			TargetID:    uint(i + 1),
		}))
	}
	// A notification for someone else stays out of alice's list.
	require.NoError(t, repo.Create(ctx, &models.Notification{
		RecipientID: users[1].ID,
		ActorID:     users[0].ID,
		Verb:        "followed",
		TargetType:  models.TargetUser,
		TargetID:    users[1].ID,
	}))

	all, err := repo.ListByRecipient(ctx, users[0].ID, false, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := repo.CountUnread(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, repo.MarkAllRead(ctx, users[0].ID))

	unread, err := repo.ListByRecipient(ctx, users[0].ID, true, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)

	count, err = repo.CountUnread(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
