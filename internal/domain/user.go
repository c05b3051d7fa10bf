package domain

import (
	"context"
	"strings"
	"time"
)

// User represents a domain user object
type User struct {
	ID           string
	ExternalID   string // subject claim of the identity provider
	Email        string
	FirstName    string
	LastName     string
	ImageURL     string
	LastSignInAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the already-authenticated principal handed over by the identity provider.
type Identity struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	ImageURL   string
}

// NewUser creates a new User instance from a first sign-in.
func NewUser(identity Identity, now time.Time) *User {
	return &User{
		ExternalID:   identity.ExternalID,
		Email:        identity.Email,
		FirstName:    identity.FirstName,
		LastName:     identity.LastName,
		ImageURL:     identity.ImageURL,
		LastSignInAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DisplayName joins first and last name, falling back to the email.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// ApplyIdentity refreshes profile fields from a later sign-in. It reports whether
// anything other than the sign-in timestamp changed.
func (u *User) ApplyIdentity(identity Identity, now time.Time) bool {
	changed := false
	if identity.Email != "" && identity.Email != u.Email {
		u.Email = identity.Email
		changed = true
	}
	if identity.FirstName != u.FirstName {
		u.FirstName = identity.FirstName
		changed = true
	}
	if identity.LastName != u.LastName {
		u.LastName = identity.LastName
		changed = true
	}
	if identity.ImageURL != u.ImageURL {
		u.ImageURL = identity.ImageURL
		changed = true
	}
	u.LastSignInAt = &now
	u.UpdatedAt = now
	return changed
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.ExternalID == "" {
		errs = append(errs, NewMissingFieldError("external_id"))
	}
	if u.Email == "" {
		errs = append(errs, NewMissingFieldError("email"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
