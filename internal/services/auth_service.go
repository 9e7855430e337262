package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHashPassword       = errors.New("failed to hash password")
)

// Client-facing messages for the sentinel errors above.
const (
	MsgEmailTaken         = "User with this email already exists"
	MsgInvalidCredentials = "Invalid email or password"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Password string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apierrors.M(apierrors.KindConflict, ErrEmailTaken, MsgEmailTaken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to check email: %w", err))
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apierrors.E(apierrors.KindValidation, fmt.Errorf("%w: %v", ErrHashPassword, err))
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.M(apierrors.KindConflict, ErrEmailTaken, MsgEmailTaken)
		}
		return nil, apierrors.E(apierrors.KindPersistence, fmt.Errorf("failed to create user: %w", err))
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a signed session token. Unknown
// emails and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierrors.M(apierrors.KindAuthentication, ErrInvalidCredentials, MsgInvalidCredentials)
		}
		return "", apierrors.E(apierrors.KindAuthentication, fmt.Errorf("failed to find user: %w", err))
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return "", apierrors.M(apierrors.KindAuthentication, ErrInvalidCredentials, MsgInvalidCredentials)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", apierrors.E(apierrors.KindAuthentication, err)
	}
	return token, nil
}
