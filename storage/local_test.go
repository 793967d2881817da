package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	docID := uuid.New()

	path, err := store.Upload(ctx, docID, "case.txt", strings.NewReader("case body"))
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("expected a storage path")
	}

	reader, err := store.Download(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "case body" {
		t.Errorf("expected stored content back, got %q", data)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Download(ctx, path); err == nil {
		t.Error("expected download to fail after delete")
	}
}

func TestLocalStorageDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(context.Background(), "no/such/file.txt"); err != nil {
		t.Errorf("deleting a missing document must not error, got %v", err)
	}
}
