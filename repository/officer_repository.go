package repository

import (
	"context"
	"errors"
	"fmt"

	"zpdraft-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOfficerNotFound = errors.New("officer not found")

// OfficerRepository handles officer account persistence
type OfficerRepository struct {
	db *pgxpool.Pool
}

// NewOfficerRepository creates a new officer repository
func NewOfficerRepository(db *pgxpool.Pool) *OfficerRepository {
	return &OfficerRepository{db: db}
}

// Create inserts a new officer and fills in the generated fields
func (r *OfficerRepository) Create(ctx context.Context, officer *models.Officer) error {
	query := `
		INSERT INTO officers (email, password_hash, name, designation)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		officer.Email,
		officer.PasswordHash,
		officer.Name,
		officer.Designation,
	).Scan(&officer.ID, &officer.CreatedAt, &officer.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create officer: %w", err)
	}

	return nil
}

// GetByEmail retrieves an officer by email
func (r *OfficerRepository) GetByEmail(ctx context.Context, email string) (*models.Officer, error) {
	query := `
		SELECT id, email, password_hash, name, designation, created_at, updated_at
		FROM officers
		WHERE email = $1
	`

	officer := &models.Officer{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&officer.ID,
		&officer.Email,
		&officer.PasswordHash,
		&officer.Name,
		&officer.Designation,
		&officer.CreatedAt,
		&officer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfficerNotFound
		}
		return nil, fmt.Errorf("failed to get officer: %w", err)
	}

	return officer, nil
}
