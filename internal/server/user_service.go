package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-review/internal/config"
	"github.com/jonathan/resume-review/internal/store"
	"github.com/jonathan/resume-review/internal/types"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	users          *store.Users
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(users *store.Users, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		users:          users,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	taken, err := s.users.EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if taken {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	record := &store.UserRecord{
		User: types.User{
			ID:        uuid.New(),
			Name:      req.Name,
			Email:     req.Email,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: passwordHash,
	}
	if err := s.users.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Password hash stays in the store layer
	user := record.User
	return &user, nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	record, err := s.users.LoadByEmail(ctx, req.Email)
	if err != nil {
		// Generic error whether the account is missing or the password is wrong
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, record.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	user := record.User
	return &user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	record, err := s.users.Load(ctx, userID.String())
	if err != nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	user := record.User
	return &user, nil
}
