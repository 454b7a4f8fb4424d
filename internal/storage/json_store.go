// ABOUTME: Flat-file document store holding the collection as one JSON array.
// ABOUTME: Writes replace the file wholesale through a temp file and rename.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/2389-research/snipsearch/internal/models"
)

// JSONFileStore stores every document in a single JSON file.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store backed by the file at path.
// The file is not touched until Load or Replace.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Load reads and validates the collection.
func (s *JSONFileStore) Load() ([]models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrStoreUnavailable, s.path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrStoreUnavailable, s.path)
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("%w: %s does not contain a document list", ErrStoreUnavailable, s.path)
	}

	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrStoreUnavailable, s.path, err)
	}
	if err := validateDocuments(docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, s.path, err)
	}
	return docs, nil
}

// Replace overwrites the file with docs.
func (s *JSONFileStore) Replace(docs []models.Document) error {
	if docs == nil {
		docs = []models.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode documents: %w", ErrIOFailure, err)
	}
	if err := atomicWrite(s.path, append(data, '\n')); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// Path returns the store file location.
func (s *JSONFileStore) Path() string {
	return s.path
}

// Close releases any resources held by the store.
func (s *JSONFileStore) Close() error {
	return nil
}

// atomicWrite writes data to a sibling temp file and renames it over path,
// so readers see either the old or the new file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0644, renameio.WithTempDir(dir)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
