package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mystic-books/internal/model"
	"mystic-books/internal/repository"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// ListUsers retrieves all registered users.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetRole looks up a user's role by email. An unset role reads as the
// plain user role.
func (s *userService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up role: %w", err)
	}
	if user == nil {
		return "", model.ErrUserNotFound
	}
	if user.Role == "" {
		return model.RoleUser, nil
	}

	return user.Role, nil
}

// Register creates a user unless the email is already registered. A repeat
// registration reports success with a null insertedId, same contract as
// the duplicate-order guard.
func (s *userService) Register(ctx context.Context, req *model.UserRequest) (*model.CreateResult, error) {
	if req == nil || req.Email == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "email is required")
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleLibrarian && role != model.RoleAdmin {
		return nil, model.ErrUnknownRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		return &model.CreateResult{Message: "User already exists"}, nil
	}

	user := &model.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == model.ErrDuplicate {
			return &model.CreateResult{Message: "User already exists"}, nil
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("user registered")

	return &model.CreateResult{InsertedID: &user.ID}, nil
}

// SetRole overwrites a user's role.
func (s *userService) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if role != model.RoleUser && role != model.RoleLibrarian && role != model.RoleAdmin {
		return model.ErrUnknownRole
	}

	count, err := s.userRepo.SetRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	if count == 0 {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Str("role", role).Msg("user role updated")

	return nil
}
