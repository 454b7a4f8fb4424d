// ABOUTME: Core data models for stored code snippets and ranked search results.
// ABOUTME: Defines the fixed embedding dimension and deterministic document ids.
package models

import (
	"github.com/google/uuid"
)

// Dimension is the fixed length of every embedding vector.
const Dimension = 64

// documentNamespace scopes name-based document ids to this application.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/2389-research/snipsearch"))

// Document is a stored snippet with its precomputed embedding.
type Document struct {
	ID        string    `json:"id"`
	Repo      string    `json:"repo"`
	File      string    `json:"file"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"emb"`
}

// ScoredResult pairs a document with its similarity to a query.
type ScoredResult struct {
	Document Document
	Score    float64
}

// DocumentID returns a stable identifier for a snippet at repo/file.
// The same repo and file always produce the same id.
func DocumentID(repo, file string) string {
	return uuid.NewSHA1(documentNamespace, []byte(repo+"/"+file)).String()
}

// Location returns the "repo/file" form used when printing a document.
func (d Document) Location() string {
	return d.Repo + "/" + d.File
}
