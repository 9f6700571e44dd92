package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_catalog/internal/model"
	"course_catalog/internal/repository"
	"course_catalog/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService provides registration and login
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	CreateAdmin(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account. Uniqueness of username and email is
// enforced by the store; a violation surfaces as ErrUserAlreadyExists.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	return s.createUser(ctx, req, req.IsAdmin)
}

// CreateAdmin creates a user with the admin flag forced on.
// Callers must have passed the admin guard already.
func (s *authService) CreateAdmin(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	return s.createUser(ctx, req, true)
}

func (s *authService) createUser(ctx context.Context, req model.RegisterRequest, isAdmin bool) (*model.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Login authenticates a user by email and password and returns a signed token.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
