// ABOUTME: Tests for tokenization and the deterministic hash-bucket embedder.
// ABOUTME: Covers determinism, dimension, normalization, and invalid input.
package embeddings

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/2389-research/snipsearch/internal/models"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"only punctuation", "  --- !!! ", []string{}},
		{"lowercases", "Binary SEARCH", []string{"binary", "search"}},
		{"splits on runs", "a, b;;c\n\td", []string{"a", "b", "c", "d"}},
		{"keeps underscores and digits", "quick_sort v2", []string{"quick_sort", "v2"}},
		{"leading and trailing separators", "(arr[mid])", []string{"arr", "mid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBucketRecurrence(t *testing.T) {
	// 'a' = 97 -> 97 mod 64 = 33; "ab" -> (33*31 + 98) mod 64 = 33; 'b' -> 34
	tests := []struct {
		token string
		want  int
	}{
		{"a", 33},
		{"b", 34},
		{"ab", 33},
		{"0", 48},
	}
	for _, tt := range tests {
		if got := bucket(tt.token, models.Dimension); got != tt.want {
			t.Errorf("bucket(%q) = %d, want %d", tt.token, got, tt.want)
		}
	}
}

func TestEmbedSingleToken(t *testing.T) {
	e := NewHashEmbedder()
	vec, err := e.Embed("A")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	for i, v := range vec {
		want := float32(0)
		if i == 33 {
			want = 1
		}
		if v != want {
			t.Errorf("vec[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestEmbedCountsRepeatedTokens(t *testing.T) {
	e := NewHashEmbedder()
	vec, err := e.Embed("a a b")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	norm := math.Sqrt(5)
	if math.Abs(float64(vec[33])-2/norm) > 1e-6 {
		t.Errorf("vec[33] = %f, want %f", vec[33], 2/norm)
	}
	if math.Abs(float64(vec[34])-1/norm) > 1e-6 {
		t.Errorf("vec[34] = %f, want %f", vec[34], 1/norm)
	}
}

func TestEmbedDeterministic(t *testing.T) {
	e := NewHashEmbedder()
	inputs := []string{"", "binary search implementation", "func main() { fmt.Println(42) }", "ÜNÏCÖDE text"}
	for _, s := range inputs {
		a, err := e.Embed(s)
		if err != nil {
			t.Fatalf("Embed(%q) error: %v", s, err)
		}
		b, err := NewHashEmbedder().Embed(s)
		if err != nil {
			t.Fatalf("Embed(%q) error: %v", s, err)
		}
		for i := range a {
			if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
				t.Fatalf("Embed(%q) not bit-identical at %d: %v vs %v", s, i, a[i], b[i])
			}
		}
	}
}

func TestEmbedDimension(t *testing.T) {
	e := NewHashEmbedder()
	if e.Dimension() != models.Dimension {
		t.Errorf("Dimension() = %d, want %d", e.Dimension(), models.Dimension)
	}
	for _, s := range []string{"", "x", "a much longer token sequence with supercalifragilisticexpialidocious words"} {
		vec, err := e.Embed(s)
		if err != nil {
			t.Fatalf("Embed(%q) error: %v", s, err)
		}
		if len(vec) != models.Dimension {
			t.Errorf("len(Embed(%q)) = %d, want %d", s, len(vec), models.Dimension)
		}
	}
}

func TestEmbedUnitNorm(t *testing.T) {
	e := NewHashEmbedder()
	for _, s := range []string{"hello", "binary search implementation", "def quick_sort(items): return items"} {
		vec, _ := e.Embed(s)
		if n := Norm(vec); math.Abs(n-1) > 1e-6 {
			t.Errorf("Norm(Embed(%q)) = %f, want 1", s, n)
		}
	}
}

func TestEmbedNoTokensIsZero(t *testing.T) {
	e := NewHashEmbedder()
	for _, s := range []string{"", "   ", "?!.,;"} {
		vec, err := e.Embed(s)
		if err != nil {
			t.Fatalf("Embed(%q) error: %v", s, err)
		}
		for i, v := range vec {
			if v != 0 {
				t.Fatalf("Embed(%q)[%d] = %f, want 0", s, i, v)
			}
		}
	}
}

func TestEmbedInvalidUTF8(t *testing.T) {
	e := NewHashEmbedder()
	_, err := e.Embed("bad \xff\xfe bytes")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTextFromValue(t *testing.T) {
	if s, err := TextFromValue("query"); err != nil || s != "query" {
		t.Errorf("TextFromValue(string) = %q, %v", s, err)
	}
	for _, v := range []any{nil, 42.0, true, []any{"a"}, map[string]any{}} {
		if _, err := TextFromValue(v); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("TextFromValue(%v) error = %v, want ErrInvalidInput", v, err)
		}
	}
}
