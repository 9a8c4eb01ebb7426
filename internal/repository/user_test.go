package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"bookclub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedError bool
		expectedCode  string
	}{
		{
			name:   "Found",
			userID: 1,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "role"}).AddRow(1, "alice", "member"))
			},
		},
		{
			name:   "Not Found",
			userID: 42,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(42, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
			expectedCode:  "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)
			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.expectedCode, appErr.Code)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.userID, user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail_NotFoundReturnsNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)).
		WithArgs("ghost@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.True(t, isUniqueConstraintError(errors.New(`duplicate key value violates unique constraint "users_email_key"`)))
	assert.True(t, isUniqueConstraintError(errors.New("SQLSTATE 23505")))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
	assert.False(t, isUniqueConstraintError(nil))
}
