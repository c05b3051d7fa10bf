package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/repository/models"
	"quiz-prep/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, external_id, email, first_name, last_name, image_url, last_sign_in_at, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		ExternalID:   m.ExternalID,
		Email:        m.Email,
		FirstName:    m.FirstName.String,
		LastName:     m.LastName.String,
		ImageURL:     m.ImageURL.String,
		LastSignInAt: util.NullTimeToTimePtr(m.LastSignInAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Email:        u.Email,
		FirstName:    util.StringToNullString(u.FirstName),
		LastName:     util.StringToNullString(u.LastName),
		ImageURL:     util.StringToNullString(u.ImageURL),
		LastSignInAt: util.TimePtrToNullTime(u.LastSignInAt),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// CreateUser inserts a new user. A duplicate external id is reported as a conflict.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	m := fromDomainUser(user)

	query := `INSERT INTO users (` + userColumns + `) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.ExternalID, m.Email, m.FirstName, m.LastName, m.ImageURL,
		m.LastSignInAt, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("user with external id %s already exists", user.ExternalID))
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user models.User
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainUser(&user), nil
}

// GetUserByID retrieves a user by their internal ID.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = :1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetUserByExternalID retrieves a user by the identity provider subject.
func (r *sqlxUserRepository) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = :1`, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by external_id: %w", err)
	}
	return user, nil
}

// UpdateUser refreshes the profile fields of an existing user.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	m := fromDomainUser(user)
	query := `UPDATE users SET email = :1, first_name = :2, last_name = :3, image_url = :4, last_sign_in_at = :5, updated_at = :6 WHERE id = :7`
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.Email, m.FirstName, m.LastName, m.ImageURL, m.LastSignInAt, m.UpdatedAt.UTC(), m.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user update: %w", err)
	}
	if rows == 0 {
		return domain.NewUserNotFoundError(user.ID)
	}
	return nil
}
