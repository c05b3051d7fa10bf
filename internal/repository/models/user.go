package models

import (
	"database/sql"
	"time"
)

// User represents a user in the system.
type User struct {
	ID           string         `db:"ID"`          // ULID
	ExternalID   string         `db:"EXTERNAL_ID"` // identity provider subject
	Email        string         `db:"EMAIL"`
	FirstName    sql.NullString `db:"FIRST_NAME"`
	LastName     sql.NullString `db:"LAST_NAME"`
	ImageURL     sql.NullString `db:"IMAGE_URL"`
	LastSignInAt sql.NullTime   `db:"LAST_SIGN_IN_AT"`
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
}

// TableName methods to satisfy potential ORM expectations, though sqlx doesn't strictly need them.
func (User) TableName() string {
	return "users"
}
