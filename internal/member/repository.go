package member

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles member data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new member repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new member into the database
func (r *Repository) Create(ctx context.Context, email, nickname, passwordHash string) (*Member, error) {
	query := `
		INSERT INTO members (email, nickname, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, nickname, password_hash, created_at
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, email, nickname, passwordHash).Scan(
		&member.ID,
		&member.Email,
		&member.Nickname,
		&member.PasswordHash,
		&member.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// GetByID retrieves a member by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	query := `
		SELECT id, email, nickname, password_hash, created_at
		FROM members
		WHERE id = $1
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.Email,
		&member.Nickname,
		&member.PasswordHash,
		&member.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetByEmail retrieves a member by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	query := `
		SELECT id, email, nickname, password_hash, created_at
		FROM members
		WHERE email = $1
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&member.ID,
		&member.Email,
		&member.Nickname,
		&member.PasswordHash,
		&member.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}

	return member, nil
}
