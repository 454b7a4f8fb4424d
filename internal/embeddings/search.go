// ABOUTME: Vector similarity scoring and top-K ranking of stored documents.
// ABOUTME: Ranking is a stable descending sort so ties keep collection order.
package embeddings

import (
	"sort"

	"github.com/2389-research/snipsearch/internal/models"
)

// DefaultTopK is the number of results returned when no limit is given.
const DefaultTopK = 5

// Dot returns the inner product of a and b. Components past the end of the
// shorter vector count as zero.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Vectors with zero magnitude score 0 against everything.
func CosineSimilarity(a, b []float32) float64 {
	normA, normB := Norm(a), Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return Dot(a, b) / (normA * normB)
}

// Rank scores every document against query and returns the k best, highest
// score first. k <= 0 selects DefaultTopK. docs is not modified.
func Rank(docs []models.Document, query []float32, k int) []models.ScoredResult {
	results := make([]models.ScoredResult, len(docs))
	for i, doc := range docs {
		results[i] = models.ScoredResult{
			Document: doc,
			Score:    CosineSimilarity(query, doc.Embedding),
		}
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := k
	if limit <= 0 {
		limit = DefaultTopK
	}
	if limit > len(results) {
		limit = len(results)
	}

	return results[:limit]
}
