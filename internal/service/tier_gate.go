package service

import (
	"context"
	"fmt"
	"time"

	"quiz-prep/internal/domain"
)

// TierGate decides whether a user may start another quiz attempt.
//
// The decision is not atomic with AttemptTracker.Start: concurrent starts by the same
// user can each observe room under the limit, so the limit may be exceeded by the
// number of concurrent requests minus one.
type TierGate interface {
	CanStart(ctx context.Context, userID, tier string, tierStartedAt *time.Time) (*domain.QuizLimitStatus, error)
	// CheckUser resolves the user's active payment and evaluates CanStart for its tier.
	CheckUser(ctx context.Context, userID string) (*domain.QuizLimitStatus, error)
}

type tierGateImpl struct {
	attemptRepo domain.QuizAttemptRepository
	paymentRepo domain.PaymentRepository
	limits      map[string]int
	now         func() time.Time
}

// NewTierGate creates a TierGate. limits maps a tier to its completed-quiz limit; a
// missing tier or a limit of 0 is unlimited.
func NewTierGate(attemptRepo domain.QuizAttemptRepository, paymentRepo domain.PaymentRepository, limits map[string]int) TierGate {
	copied := make(map[string]int, len(limits))
	for tier, limit := range limits {
		copied[tier] = limit
	}
	return &tierGateImpl{
		attemptRepo: attemptRepo,
		paymentRepo: paymentRepo,
		limits:      copied,
		now:         utcNow,
	}
}

func (g *tierGateImpl) CanStart(ctx context.Context, userID, tier string, tierStartedAt *time.Time) (*domain.QuizLimitStatus, error) {
	limit := g.limits[tier]
	if limit <= 0 {
		return &domain.QuizLimitStatus{Allowed: true, Message: "unlimited", Tier: tier}, nil
	}

	completed, err := g.attemptRepo.CountCompletedSince(ctx, userID, tierStartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed attempts: %w", err)
	}

	status := &domain.QuizLimitStatus{Completed: completed, Limit: limit, Tier: tier}
	if completed < limit {
		status.Allowed = true
		status.Message = remainingMessage(limit - completed)
	} else {
		status.Message = fmt.Sprintf("Test limit reached (%d tests)", limit)
	}
	return status, nil
}

func remainingMessage(n int) string {
	if n == 1 {
		return "1 test remaining"
	}
	return fmt.Sprintf("%d tests remaining", n)
}

func (g *tierGateImpl) CheckUser(ctx context.Context, userID string) (*domain.QuizLimitStatus, error) {
	payment, err := g.paymentRepo.GetActivePayment(ctx, userID, g.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get active payment: %w", err)
	}
	if payment == nil {
		return g.CanStart(ctx, userID, domain.TierDefault, nil)
	}
	startedAt := payment.CreatedAt
	return g.CanStart(ctx, userID, payment.Tier, &startedAt)
}
