package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage abstracts where uploaded source documents live
type Storage interface {
	// Upload stores a document and returns the storage path
	Upload(ctx context.Context, docID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves a document by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a document by storage path
	Delete(ctx context.Context, storagePath string) error
}

// Type represents the storage backend type
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config holds configuration for storage backends
type Config struct {
	Type         Type
	LocalPath    string // for local storage
	S3Bucket     string // for S3 storage
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a storage instance based on configuration
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case TypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewFromEnv creates a storage instance from environment variables
func NewFromEnv() (Storage, error) {
	storageType := Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = TypeLocal
	}

	switch storageType {
	case TypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/documents"
		}
		return NewLocalStorage(localPath)

	case TypeS3:
		cfg := Config{
			Type:         TypeS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "ap-south-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}

// storagePathFor generates a unique storage path for a document
func storagePathFor(docID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filename, ext)
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = strings.ReplaceAll(baseName, "/", "_")
	baseName = strings.ReplaceAll(baseName, "\\", "_")

	return fmt.Sprintf("%s/%s_%s%s", docID.String()[:2], docID.String(), baseName, ext)
}
