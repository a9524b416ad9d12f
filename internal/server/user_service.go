package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniela/resume-optimizer/internal/config"
	"github.com/daniela/resume-optimizer/internal/db"
	"github.com/daniela/resume-optimizer/internal/types"
)

// ProfileStore is the subset of the database the user service needs. It is
// an interface so tests can substitute a fake.
type ProfileStore interface {
	CreateProfile(ctx context.Context, email, passwordHash, fullName string) (uuid.UUID, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*db.Profile, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// UserService provides business logic for account operations.
type UserService struct {
	db             ProfileStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store ProfileStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             store,
		passwordConfig: passwordConfig,
	}
}

// profileToUser converts db.Profile to types.User, excluding the password hash.
func profileToUser(p *db.Profile) *types.User {
	if p == nil {
		return nil
	}
	return &types.User{
		ID:                  p.ID,
		Email:               p.Email,
		FullName:            p.FullName,
		TargetRole:          p.TargetRole,
		ExperienceLevel:     p.ExperienceLevel,
		Country:             p.Country,
		OnboardingCompleted: p.OnboardingCompleted,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// Register creates a new profile with password authentication.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	existing, err := s.db.GetProfileByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateProfile(ctx, req.Email, passwordHash, req.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	profile, err := s.db.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("created profile not found: %s", userID)
	}

	return profileToUser(profile), nil
}

// Login authenticates a user and returns user data.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	profile, err := s.db.GetProfileByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}

	// Always return the same generic error whether the account is missing
	// or the password is wrong.
	if profile == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, profile.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return profileToUser(profile), nil
}

// IsAdmin reports whether the user holds the admin role.
func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := s.db.GetProfile(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile != nil && profile.IsAdmin, nil
}

// UpdatePassword updates a user's password after verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	profile, err := s.db.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, profile.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdatePasswordHash(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
