// ABOUTME: Plain-text rendering of ranked results and stored documents.
// ABOUTME: Shared by the CLI and the MCP tools so both print the same lines.
package snippets

import (
	"fmt"
	"strings"

	"github.com/2389-research/snipsearch/internal/models"
)

// FormatResult renders one ranked result; rank is 1-based.
func FormatResult(rank int, r models.ScoredResult) string {
	return fmt.Sprintf("%d. %s  %s  score=%.4f", rank, r.Document.ID, r.Document.Location(), r.Score)
}

// FormatResults renders results one per line.
func FormatResults(results []models.ScoredResult) string {
	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(FormatResult(i+1, r))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatDocument renders a stored document without its text.
func FormatDocument(d models.Document) string {
	return fmt.Sprintf("%s  %s", d.ID, d.Location())
}
