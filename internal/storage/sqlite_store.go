// ABOUTME: Single-file SQLite document store using the pure-Go modernc driver.
// ABOUTME: Embeddings are stored as little-endian float32 BLOBs; reseeding swaps in a new file.
package storage

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	_ "modernc.org/sqlite"

	"github.com/2389-research/snipsearch/internal/models"
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	position INTEGER PRIMARY KEY,
	id       TEXT NOT NULL UNIQUE,
	repo     TEXT NOT NULL,
	file     TEXT NOT NULL,
	text     TEXT NOT NULL,
	emb      BLOB NOT NULL
)`

// SQLiteStore stores documents in a SQLite database file.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a store backed by the database at path.
// The database is opened lazily so a missing file is reported by Load.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s.db = db
	return db, nil
}

// Load reads every document ordered by insert position.
func (s *SQLiteStore) Load() ([]models.Document, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrStoreUnavailable, s.path, err)
	}
	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrStoreUnavailable, s.path, err)
	}

	rows, err := db.Query(`SELECT id, repo, file, text, emb FROM documents ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query %s: %w", ErrStoreUnavailable, s.path, err)
	}
	defer func() { _ = rows.Close() }()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		var blob []byte
		if err := rows.Scan(&doc.ID, &doc.Repo, &doc.File, &doc.Text, &blob); err != nil {
			return nil, fmt.Errorf("%w: failed to scan document: %w", ErrStoreUnavailable, err)
		}
		vec, err := decodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: document %q: %w", ErrStoreUnavailable, doc.ID, err)
		}
		doc.Embedding = vec
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read rows: %w", ErrStoreUnavailable, err)
	}
	if err := validateDocuments(docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, s.path, err)
	}
	return docs, nil
}

// Replace builds a fresh database beside the store and renames it over the
// old file, so a corrupt or foreign file at path is overwritten too.
func (s *SQLiteStore) Replace(docs []models.Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create store directory: %w", ErrIOFailure, err)
	}

	pending, err := renameio.NewPendingFile(s.path, renameio.WithTempDir(dir), renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("%w: failed to create temp database: %w", ErrIOFailure, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := writeDatabase(pending.Name(), docs); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	// The old handle points at the file being replaced; Load reopens lazily.
	if err := s.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrIOFailure, s.path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", ErrIOFailure, s.path, err)
	}
	return nil
}

// writeDatabase creates the schema in the empty database at path and inserts
// docs in one transaction.
func writeDatabase(path string, docs []models.Document) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(createDocumentsTable); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO documents(position, id, repo, file, text, emb) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, doc := range docs {
		if _, err := stmt.Exec(i, doc.ID, doc.Repo, doc.File, doc.Text, encodeEmbedding(doc.Embedding)); err != nil {
			return fmt.Errorf("failed to insert %q: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return db.Close()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database if it was opened.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// encodeEmbedding packs vec as little-endian IEEE 754 float32 values.
func encodeEmbedding(vec []float32) []byte {
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// decodeEmbedding reverses encodeEmbedding.
func decodeEmbedding(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob length %d (not multiple of 4)", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
