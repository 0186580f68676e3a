package index

import (
	"context"
	"hash/fnv"
	"path/filepath"
	"testing"

	"github.com/aurorareg/titlesentry/pkg/verify"
)

// fakeEmbed produces a deterministic, low-dimensional embedding from the
// text's content so tests don't depend on a real embedding model.
func fakeEmbed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum32()

	vec := make([]float32, 8)
	for i := range vec {
		shifted := (seed >> (uint(i) % 32)) & 0xFF
		vec[i] = float32(shifted) / 255.0
	}
	return vec, nil
}

func TestStore_UpsertAndQuerySimilar(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "titles.chromem"), fakeEmbed)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	records := []verify.TitleRecord{
		{Title: "Morning Herald", NormalizedTitle: "morning herald", CanonicalTitle: "morningherald"},
		{Title: "Evening Gazette", NormalizedTitle: "evening gazette", CanonicalTitle: "eveninggazette"},
	}
	for _, rec := range records {
		if err := store.Upsert(context.Background(), rec); err != nil {
			t.Fatalf("Upsert(%q) error = %v", rec.Title, err)
		}
	}

	if got := store.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}

	matches, err := store.QuerySimilar(context.Background(), "Morning Herald", 1)
	if err != nil {
		t.Fatalf("QuerySimilar() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Title != "Morning Herald" {
		t.Errorf("closest match = %q, want %q", matches[0].Title, "Morning Herald")
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	if got := CosineSimilarity(a, b); got != 1 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1", got)
	}

	c := []float32{0, 1, 0}
	if got := CosineSimilarity(a, c); got != 0 {
		t.Errorf("CosineSimilarity(orthogonal) = %v, want 0", got)
	}

	if got := CosineSimilarity(a, []float32{}); got != 0 {
		t.Errorf("CosineSimilarity(mismatched lengths) = %v, want 0", got)
	}
}
