package domain

import (
	"context"
	"time"
)

// Subscription tiers.
const (
	TierFree    = "free"
	Tier7Days   = "7days"
	Tier1Month  = "1month"
	TierDefault = TierFree
)

// PaymentStatusSucceeded marks a payment the provider has settled.
const PaymentStatusSucceeded = "succeeded"

// Payment is written by the payment provider's webhook flow and only read here.
type Payment struct {
	ID              string
	UserID          string
	PaymentIntentID string
	AmountCents     int
	Currency        string
	Tier            string
	Status          string
	CreatedAt       time.Time
	ExpiresAt       *time.Time
}

// IsActive reports whether the payment is settled and not yet expired at now.
func (p *Payment) IsActive(now time.Time) bool {
	return p.Status == PaymentStatusSucceeded && p.ExpiresAt != nil && p.ExpiresAt.After(now)
}

// QuizLimitStatus is the decision of the tier gate.
type QuizLimitStatus struct {
	Allowed   bool   `json:"allowed"`
	Message   string `json:"message"`
	Completed int    `json:"completed"`
	Limit     int    `json:"limit"`
	Tier      string `json:"tier"`
}

// PaymentRepository reads payment rows.
type PaymentRepository interface {
	// GetActivePayment returns the latest succeeded payment expiring after now, or nil.
	GetActivePayment(ctx context.Context, userID string, now time.Time) (*Payment, error)
}
