package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/recipebook/internal/auth"
	usermodel "github.com/Varun5711/recipebook/internal/models/user"
	"github.com/Varun5711/recipebook/internal/storage"
	"github.com/Varun5711/recipebook/internal/validation"
	"github.com/google/uuid"
)

type UserService struct {
	users      storage.UserStore
	hasher     *auth.PasswordHasher
	jwtManager *auth.JWTManager
}

func NewUserService(users storage.UserStore, hasher *auth.PasswordHasher, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		users:      users,
		hasher:     hasher,
		jwtManager: jwtManager,
	}
}

func (s *UserService) Register(ctx context.Context, email, password string) (*usermodel.User, error) {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateRegistration(email, password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	existingUser, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrConflict
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, &usermodel.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks a password login. Unknown emails and wrong passwords
// both yield ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*usermodel.User, error) {
	user, err := s.users.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	if err := s.hasher.Check(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*usermodel.AuthResponse, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &usermodel.AuthResponse{
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *UserService) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return claims, nil
}

// DeleteUser removes the account and, through the store, every recipe it
// authored.
func (s *UserService) DeleteUser(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUnknownUser
	}

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrUnknownUser
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
