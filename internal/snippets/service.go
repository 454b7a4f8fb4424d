// ABOUTME: Seed and query operations over an explicitly supplied document store.
// ABOUTME: Wires the embedder, ranker, and store together for the CLI and MCP server.
package snippets

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/2389-research/snipsearch/internal/embeddings"
	"github.com/2389-research/snipsearch/internal/logging"
	"github.com/2389-research/snipsearch/internal/models"
	"github.com/2389-research/snipsearch/internal/storage"
)

// Service runs seed and query against one store.
type Service struct {
	store    storage.DocumentStore
	embedder embeddings.Embedder
	log      logrus.FieldLogger
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithLogger sets the logger used for operation events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates a service over store using embedder.
func NewService(store storage.DocumentStore, embedder embeddings.Embedder, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	s := &Service{
		store:    store,
		embedder: embedder,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("store", store.Path())
	return s, nil
}

// Store returns the underlying document store.
func (s *Service) Store() storage.DocumentStore {
	return s.store
}

// Seed embeds the demonstration snippets and overwrites the store with them.
// It returns the number of documents written.
func (s *Service) Seed() (int, error) {
	demo := DemoDocuments()
	docs := make([]models.Document, 0, len(demo))
	for _, snip := range demo {
		vec, err := s.embedder.Embed(snip.Text)
		if err != nil {
			return 0, fmt.Errorf("failed to embed %s/%s: %w", snip.Repo, snip.File, err)
		}
		docs = append(docs, models.Document{
			ID:        models.DocumentID(snip.Repo, snip.File),
			Repo:      snip.Repo,
			File:      snip.File,
			Text:      snip.Text,
			Embedding: vec,
		})
	}

	if err := s.store.Replace(docs); err != nil {
		return 0, fmt.Errorf("failed to write store: %w", err)
	}

	s.log.WithField("count", len(docs)).Info("seeded store")
	return len(docs), nil
}

// Query ranks the stored documents against text and returns the best k.
// k <= 0 selects embeddings.DefaultTopK.
func (s *Service) Query(text string, k int) ([]models.ScoredResult, error) {
	docs, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	vec, err := s.embedder.Embed(text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results := embeddings.Rank(docs, vec, k)
	s.log.WithFields(logrus.Fields{
		"k":         k,
		"documents": len(docs),
		"results":   len(results),
	}).Debug("ranked query")
	return results, nil
}

// List returns every stored document in collection order.
func (s *Service) List() ([]models.Document, error) {
	docs, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return docs, nil
}
