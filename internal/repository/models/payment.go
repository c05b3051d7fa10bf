package models

import (
	"database/sql"
	"time"
)

// Payment maps the payments table, written by the payment webhook flow.
type Payment struct {
	ID              string       `db:"ID"`
	UserID          string       `db:"USER_ID"`
	PaymentIntentID string       `db:"PAYMENT_INTENT_ID"`
	AmountCents     int          `db:"AMOUNT_CENTS"`
	Currency        string       `db:"CURRENCY"`
	Tier            string       `db:"TIER"`
	Status          string       `db:"STATUS"`
	CreatedAt       time.Time    `db:"CREATED_AT"`
	ExpiresAt       sql.NullTime `db:"EXPIRES_AT"`
}

func (Payment) TableName() string {
	return "payments"
}
