package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	repository "github.com/Shrvnsthr/Event-Booking/internal/database/postgres"
	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/Shrvnsthr/Event-Booking/pkg/auth"
	"github.com/sirupsen/logrus"
)

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", entity.ErrInvalidInput)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", entity.ErrInvalidInput)
	}

	// Unknown roles silently fall back to the regular user role, the
	// same way the signup endpoint always behaved.
	role := entity.UserRole(req.Role)
	if !role.IsValid() {
		role = entity.RoleUser
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	return user, nil
}

// Login verifies the credentials and issues a signed token. A missing
// account and a wrong password return the same error so the response
// does not leak which emails are registered.
func (s *userService) Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return "", nil, entity.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return "", nil, entity.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", entity.ErrInvalidInput)
	}
	return s.userRepo.GetByID(ctx, id)
}
