package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/repository/models"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

type sqlxPaymentRepository struct {
	db *sqlx.DB
}

func NewSQLXPaymentRepository(db *sqlx.DB) domain.PaymentRepository {
	return &sqlxPaymentRepository{db: db}
}

// GetActivePayment picks the latest succeeded payment that expires after now. The
// schema allows several; the newest one wins.
func (r *sqlxPaymentRepository) GetActivePayment(ctx context.Context, userID string, now time.Time) (*domain.Payment, error) {
	var m models.Payment
	query := `SELECT id, user_id, payment_intent_id, amount_cents, currency, tier, status, created_at, expires_at
	          FROM payments
	          WHERE user_id = :1 AND status = :2 AND expires_at > :3
	          ORDER BY created_at DESC
	          FETCH FIRST 1 ROWS ONLY`
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID, domain.PaymentStatusSucceeded, now.UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active payment: %w", err)
	}
	return &domain.Payment{
		ID:              m.ID,
		UserID:          m.UserID,
		PaymentIntentID: m.PaymentIntentID,
		AmountCents:     m.AmountCents,
		Currency:        m.Currency,
		Tier:            m.Tier,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		ExpiresAt:       util.NullTimeToTimePtr(m.ExpiresAt),
	}, nil
}
