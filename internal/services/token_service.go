package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrEmptySecret  = errors.New("token signing secret must not be empty")
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// GenerateToken returns a signed token identifying userID.
	GenerateToken(ctx context.Context, userID uint64) (string, error)

	// ValidateToken verifies tokenString and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the payload carried by a session token.
type Claims struct {
	UserID uint64 `json:"userId"`
	jwt.RegisteredClaims
}

// JWTTokenService signs tokens with HMAC-SHA256.
type JWTTokenService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
}

var _ TokenService = (*JWTTokenService)(nil)

// NewJWTTokenService creates a JWTTokenService. A zero lifetime issues tokens
// without an expiry claim.
func NewJWTTokenService(secret string, lifetime time.Duration) (*JWTTokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTTokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
	}, nil
}

// GenerateToken creates a signed token for userID.
func (s *JWTTokenService) GenerateToken(ctx context.Context, userID uint64) (string, error) {
	now := s.timeFunc()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(userID, 10),
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.NewString(),
		},
	}
	if s.lifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.lifetime))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign token", "error", err, "user_id", userID)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString, checking its signature, algorithm and
// expiry. Every failure is tagged KindForbidden.
func (s *JWTTokenService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apierrors.E(apierrors.KindUnauthorized, ErrMissingToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		slog.DebugContext(ctx, "token validation failed", "error", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierrors.E(apierrors.KindForbidden, ErrExpiredToken)
		}
		return nil, apierrors.E(apierrors.KindForbidden, ErrInvalidToken)
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, apierrors.E(apierrors.KindForbidden, ErrInvalidToken)
	}
	return claims, nil
}
