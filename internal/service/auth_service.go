package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-prep/internal/config"
	"quiz-prep/internal/domain"
	"quiz-prep/internal/dto"
	"quiz-prep/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidJWTToken is returned for tokens that fail signature or claim checks.
var ErrInvalidJWTToken = errors.New("invalid JWT token")

// AuthService verifies identity-provider tokens.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	// IdentityFromClaims maps verified claims to the identity handed to UserService.
	IdentityFromClaims(claims *dto.AuthClaims) domain.Identity
	// GenerateJWT signs a token for identity. It exists for local development and tests.
	GenerateJWT(identity domain.Identity, ttl time.Duration) (string, error)
}

type authServiceImpl struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg config.JWTConfig) (AuthService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &authServiceImpl{cfg: cfg, now: time.Now}, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidJWTToken)
	}
	return claims, nil
}

func (s *authServiceImpl) IdentityFromClaims(claims *dto.AuthClaims) domain.Identity {
	return domain.Identity{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		ImageURL:   claims.ImageURL,
	}
}

func (s *authServiceImpl) GenerateJWT(identity domain.Identity, ttl time.Duration) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		ImageURL:  identity.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ExternalID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
