package service

import (
	"context"
	"fmt"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"

	"go.uber.org/zap"
)

// signInRefreshInterval bounds how often an unchanged identity rewrites last_sign_in_at.
const signInRefreshInterval = time.Hour

// UserProfile is a user together with the tier they currently hold.
type UserProfile struct {
	User          *domain.User
	Tier          string
	TierExpiresAt *time.Time
}

// UserService defines the interface for user-related operations.
type UserService interface {
	// EnsureUser maps an authenticated identity to a stored user, creating it on first sign-in.
	EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
}

type userServiceImpl struct {
	userRepo    domain.UserRepository
	paymentRepo domain.PaymentRepository
	now         func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository, paymentRepo domain.PaymentRepository) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		now:         utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (s *userServiceImpl) EnsureUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.ExternalID == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("external_id")}
	}
	now := s.now()

	user, err := s.userRepo.GetUserByExternalID(ctx, identity.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}

	if user == nil {
		user = domain.NewUser(identity, now)
		if err := user.Validate(); err != nil {
			return nil, err
		}
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			if !domain.IsCode(err, domain.CodeConflict) {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
			// A concurrent first sign-in won the insert.
			existing, getErr := s.userRepo.GetUserByExternalID(ctx, identity.ExternalID)
			if getErr != nil || existing == nil {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
			return existing, nil
		}
		logger.Get().Info("Provisioned new user", zap.String("userID", user.ID), zap.String("externalID", user.ExternalID))
		return user, nil
	}

	stale := user.LastSignInAt == nil || now.Sub(*user.LastSignInAt) >= signInRefreshInterval
	changed := user.ApplyIdentity(identity, now)
	if !changed && !stale {
		return user, nil
	}
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}

	payment, err := s.paymentRepo.GetActivePayment(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get active payment: %w", err)
	}

	profile := &UserProfile{User: user, Tier: domain.TierDefault}
	if payment != nil {
		profile.Tier = payment.Tier
		profile.TierExpiresAt = payment.ExpiresAt
	}
	return profile, nil
}
