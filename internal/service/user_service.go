package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"bookclub/internal/models"
	"bookclub/internal/repository"
	"bookclub/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
	Avatar   string
}

type UpdateRoleInput struct {
	TargetID uint
	Role     models.Role
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a user with the default member role. The password is
// bcrypt-hashed before it touches the repository.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Role:     models.RoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair. It returns the same
// error whether the email is unknown or the password is wrong, so the
// response does not reveal which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewValidationError("Invalid Credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewValidationError("Invalid Credentials")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user with follower and following counts.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetProfile(ctx, id)
}

func (s *UserService) GetUserWithPosts(ctx context.Context, id uint, postLimit int) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id, postLimit)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole changes a user's role. Callers are expected to have already
// verified the acting user is an admin.
func (s *UserService) UpdateRole(ctx context.Context, in UpdateRoleInput) (*models.User, error) {
	if !in.Role.Valid() {
		return nil, models.NewValidationError("Invalid role")
	}
	if err := s.userRepo.UpdateRole(ctx, in.TargetID, in.Role); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, in.TargetID)
}

// IsAdmin reports whether the user holds the admin role. The server
// hands this to services that allow admin overrides.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
