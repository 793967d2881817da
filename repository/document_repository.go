package repository

import (
	"context"

	"zpdraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for source documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (
			id, kind, filename, mime_type, size, storage_path
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.ID,
		doc.Kind,
		doc.Filename,
		doc.MimeType,
		doc.Size,
		doc.StoragePath,
	).Scan(&doc.CreatedAt)

	return err
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, kind, filename, mime_type, size, storage_path, created_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Kind,
		&doc.Filename,
		&doc.MimeType,
		&doc.Size,
		&doc.StoragePath,
		&doc.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListByKind retrieves all documents of one kind
func (r *DocumentRepository) ListByKind(ctx context.Context, kind models.DocumentKind) ([]*models.Document, error) {
	query := `
		SELECT id, kind, filename, mime_type, size, storage_path, created_at
		FROM documents
		WHERE kind = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.Kind,
			&doc.Filename,
			&doc.MimeType,
			&doc.Size,
			&doc.StoragePath,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// Delete deletes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
