package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"bookclub/internal/models"
)

func TestUserServiceRegisterHashesPassword(t *testing.T) {
	repo := noopUserRepo()
	var saved *models.User
	repo.createFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	svc := NewUserService(repo)
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "reader_one",
		Email:    "reader@example.com",
		Password: "Sup3r-Secret-Pass!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != models.RoleMember {
		t.Fatalf("expected member role, got %q", user.Role)
	}
	if saved.Password == "Sup3r-Secret-Pass!" {
		t.Fatal("password must be hashed before persisting")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Sup3r-Secret-Pass!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserServiceRegisterWeakPassword(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "reader_two",
		Email:    "reader2@example.com",
		Password: "short",
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r-Secret-Pass!"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "known@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hash)}, nil
		}
		return nil, nil
	}

	svc := NewUserService(repo)

	if _, err := svc.Authenticate(context.Background(), "known@example.com", "Sup3r-Secret-Pass!"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}

	// Unknown email and wrong password produce the same error message.
	for _, tc := range []struct{ email, password string }{
		{"unknown@example.com", "Sup3r-Secret-Pass!"},
		{"known@example.com", "wrong-password"},
	} {
		_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Message != "Invalid Credentials" {
			t.Fatalf("expected Invalid Credentials for %s, got %#v", tc.email, err)
		}
	}
}

func TestUserServiceUpdateRoleRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(noopUserRepo())
	_, err := svc.UpdateRole(context.Background(), UpdateRoleInput{TargetID: 2, Role: models.Role("superuser")})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestUserServiceIsAdmin(t *testing.T) {
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 1 {
			return &models.User{ID: 1, Role: models.RoleAdmin}, nil
		}
		return &models.User{ID: id, Role: models.RoleMember}, nil
	}

	svc := NewUserService(repo)
	admin, err := svc.IsAdmin(context.Background(), 1)
	if err != nil || !admin {
		t.Fatalf("expected admin, got %v err=%v", admin, err)
	}
	admin, err = svc.IsAdmin(context.Background(), 2)
	if err != nil || admin {
		t.Fatalf("expected non-admin, got %v err=%v", admin, err)
	}
}
