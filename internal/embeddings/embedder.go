// ABOUTME: Embedding interface and the deterministic hash-bucket embedder.
// ABOUTME: Maps text to a fixed-dimension, L2-normalized vector without any model.
package embeddings

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/2389-research/snipsearch/internal/models"
)

// ErrInvalidInput is returned when the value to embed is not text.
var ErrInvalidInput = errors.New("invalid input")

// Embedder generates vector embeddings from text.
type Embedder interface {
	// Embed returns a vector embedding for the given text.
	Embed(text string) ([]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int
}

var nonWord = regexp.MustCompile(`\W+`)

// HashEmbedder buckets token hashes into a fixed number of dimensions.
// Collisions between tokens are expected.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder returns an embedder producing models.Dimension-length vectors.
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{dim: models.Dimension}
}

// Embed tokenizes text, counts each token into bucket (hash*31+code) mod D,
// and normalizes the result. Text with no tokens yields the zero vector.
func (e *HashEmbedder) Embed(text string) ([]float32, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}

	vec := make([]float32, e.dim)
	for _, token := range Tokenize(text) {
		vec[bucket(token, e.dim)]++
	}
	return Normalize(vec), nil
}

// Dimension returns the length of vectors produced by Embed.
func (e *HashEmbedder) Dimension() int {
	return e.dim
}

// bucket folds the token's code points into [0, dim).
func bucket(token string, dim int) int {
	hash := 0
	for _, r := range token {
		hash = (hash*31 + int(r)) % dim
	}
	return hash
}

// Tokenize lowercases text and splits it on runs of non-word characters,
// dropping empty tokens.
func Tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize scales v to unit length in place and returns it.
// A zero vector is left unchanged.
func Normalize(v []float32) []float32 {
	norm := Norm(v)
	if norm == 0 {
		norm = 1
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// TextFromValue extracts text from a dynamically typed value such as a
// decoded JSON argument. Anything other than a string is rejected.
func TextFromValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected text, got %T", ErrInvalidInput, v)
	}
	return s, nil
}
