package service

import (
	"context"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/repository"
	"github.com/dwellio/dwellio-api/pkg/auth"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

type AuthService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, domain.Invalid(err.Error())
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Invalid("Email already registered")
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, req.Email, hash)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Invalid("Email already registered")
		}
		return nil, err
	}

	token, err := auth.NewToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return &domain.AuthResponse{
		Message: "Registration successful",
		Token:   token,
		User:    user.Info(),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, domain.Invalid(err.Error())
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Unauthorized("Invalid credentials")
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, domain.Unauthorized("Invalid credentials")
	}

	token, err := auth.NewToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Info(),
	}, nil
}

// GetUser loads the user a validated token points at. A nil result means the
// account is gone and the token must be rejected.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
