package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind distinguishes the three source-document roles
type DocumentKind string

const (
	DocumentKindCase  DocumentKind = "case"
	DocumentKindGR    DocumentKind = "gr"
	DocumentKindLegal DocumentKind = "legal"
)

// Document represents an uploaded source document (OCR'd case file, GR text
// or other legal text) kept for officer reference
type Document struct {
	ID          uuid.UUID    `json:"id"`
	Kind        DocumentKind `json:"kind"`
	Filename    string       `json:"filename"`
	MimeType    string       `json:"mime_type"`
	Size        int64        `json:"size"`
	StoragePath string       `json:"storage_path"`
	CreatedAt   time.Time    `json:"created_at"`
}
