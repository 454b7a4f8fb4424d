// ABOUTME: Interface definition and backend selection for the document store.
// ABOUTME: Declares the store error kinds surfaced to commands and tools.
package storage

import (
	"errors"
	"fmt"

	"github.com/2389-research/snipsearch/internal/models"
)

var (
	// ErrStoreUnavailable means the store is missing, unreadable, or malformed.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrIOFailure means writing the store failed.
	ErrIOFailure = errors.New("store write failed")
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DocumentStore defines operations for the persisted document collection.
type DocumentStore interface {
	// Load reads the whole collection in stored order.
	Load() ([]models.Document, error)

	// Replace overwrites the whole collection with docs.
	Replace(docs []models.Document) error

	// Path returns the location of the backing file.
	Path() string

	// Close releases any resources held by the store.
	Close() error
}

// Open returns the store for backend at path. An empty backend means JSON.
func Open(backend, path string) (DocumentStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	switch backend {
	case "", BackendJSON:
		return NewJSONFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %q or %q)", backend, BackendJSON, BackendSQLite)
	}
}

// validateDocuments checks records read back from disk.
func validateDocuments(docs []models.Document) error {
	seen := make(map[string]struct{}, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("document %d has no id", i)
		}
		if _, dup := seen[doc.ID]; dup {
			return fmt.Errorf("duplicate document id %q", doc.ID)
		}
		seen[doc.ID] = struct{}{}
		if len(doc.Embedding) != models.Dimension {
			return fmt.Errorf("document %q has %d-dim embedding, want %d", doc.ID, len(doc.Embedding), models.Dimension)
		}
	}
	return nil
}
