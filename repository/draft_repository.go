package repository

import (
	"context"

	"zpdraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DraftRepository handles database operations for archived drafts
type DraftRepository struct {
	db *pgxpool.Pool
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{db: db}
}

// Create archives one generated draft
func (r *DraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	query := `
		INSERT INTO drafts (
			id, language, mode, case_number, applicant_name,
			facts, decision_text, order_text, raw_response, model
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		draft.ID,
		draft.Language,
		draft.Mode,
		draft.CaseNumber,
		draft.ApplicantName,
		draft.Facts,
		draft.DecisionText,
		draft.OrderText,
		draft.RawResponse,
		draft.Model,
	).Scan(&draft.CreatedAt)

	return err
}

// GetByID retrieves an archived draft by ID
func (r *DraftRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	draft := &models.Draft{}
	query := `
		SELECT id, language, mode, case_number, applicant_name,
			facts, decision_text, order_text, raw_response, model, created_at
		FROM drafts
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&draft.ID,
		&draft.Language,
		&draft.Mode,
		&draft.CaseNumber,
		&draft.ApplicantName,
		&draft.Facts,
		&draft.DecisionText,
		&draft.OrderText,
		&draft.RawResponse,
		&draft.Model,
		&draft.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return draft, nil
}

// ListRecent retrieves the most recently archived drafts
func (r *DraftRepository) ListRecent(ctx context.Context, limit int) ([]*models.Draft, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, language, mode, case_number, applicant_name,
			facts, decision_text, order_text, raw_response, model, created_at
		FROM drafts
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		draft := &models.Draft{}
		err := rows.Scan(
			&draft.ID,
			&draft.Language,
			&draft.Mode,
			&draft.CaseNumber,
			&draft.ApplicantName,
			&draft.Facts,
			&draft.DecisionText,
			&draft.OrderText,
			&draft.RawResponse,
			&draft.Model,
			&draft.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	return drafts, rows.Err()
}

// Delete removes an archived draft
func (r *DraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM drafts WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
