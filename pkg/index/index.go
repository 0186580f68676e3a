// Package index provides an optional, persisted semantic snapshot store
// for title embeddings, backed by chromem-go. It sits alongside
// pkg/verify's in-memory InvertedIndex: the inverted index always drives
// lexical/phonetic candidate retrieval, while this store lets a
// deployment that has an embedding provider configured (config.Config's
// DisableEmbeddings is false) persist and query dense vectors across
// restarts without standing up an external vector database.
package index

import (
	"context"
	"fmt"
	"math"

	chromem "github.com/philippgille/chromem-go"

	"github.com/aurorareg/titlesentry/pkg/verify"
)

const collectionName = "title_embeddings"

// EmbeddingFunc generates a dense embedding for a title.
// NewRemoteEmbeddingFunc supplies one backed by an external HTTP embedding
// service; none is active by default, since config.Config.DisableEmbeddings
// defaults to true.
type EmbeddingFunc func(ctx context.Context, text string) ([]float32, error)

// Store is a persisted, queryable collection of title embeddings.
type Store struct {
	collection *chromem.Collection
	embed      EmbeddingFunc
}

// Open creates or loads a chromem-go database rooted at path and returns
// the title_embeddings collection, created with embed as its embedding
// function if it does not already exist.
func Open(path string, embed EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("opening chromem database at %q: %w", path, err)
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, chromem.EmbeddingFunc(embed))
	if err != nil {
		return nil, fmt.Errorf("creating %s collection: %w", collectionName, err)
	}

	return &Store{collection: collection, embed: embed}, nil
}

// Similarity implements verify.SemanticProvider: it embeds both titles
// with the store's configured EmbeddingFunc and returns their cosine
// similarity, substituting for the concept-cluster table's coarse
// boolean signal when wired into a Core via SetSemanticProvider.
func (s *Store) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := s.embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embedding %q: %w", a, err)
	}
	vb, err := s.embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embedding %q: %w", b, err)
	}
	return CosineSimilarity(va, vb), nil
}

// Upsert stores or replaces the embedding for a title record. The
// record's canonical title is used as the document ID so re-submitting
// the same title (e.g. after a registry re-sync) overwrites in place.
func (s *Store) Upsert(ctx context.Context, record verify.TitleRecord) error {
	doc := chromem.Document{
		ID:      record.CanonicalTitle,
		Content: record.NormalizedTitle,
		Metadata: map[string]string{
			"title": record.Title,
		},
	}
	if len(record.Embedding) > 0 {
		doc.Embedding = record.Embedding
	}
	if err := s.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("upserting embedding for %q: %w", record.Title, err)
	}
	return nil
}

// SemanticMatch is one nearest-neighbor result from a similarity query.
type SemanticMatch struct {
	Title      string
	Similarity float64
}

// QuerySimilar returns up to n titles whose embeddings are closest to
// title's embedding. It is the persisted counterpart to
// verify.ConceptClusterSimilarity's curated-cluster signal: where the
// cluster table only recognizes known synonym families, this surfaces
// semantic neighbors the cluster catalogue has no entry for. The query is
// normalized with verify.Normalize first, matching the normalized title
// text Upsert stores as each document's content.
func (s *Store) QuerySimilar(ctx context.Context, title string, n int) ([]SemanticMatch, error) {
	if n <= 0 {
		n = 10
	}
	if count := s.collection.Count(); count < n {
		n = count
	}
	if n == 0 {
		return nil, nil
	}

	results, err := s.collection.Query(ctx, verify.Normalize(title), n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying similar titles: %w", err)
	}

	matches := make([]SemanticMatch, 0, len(results))
	for _, r := range results {
		displayTitle := r.Content
		if t, ok := r.Metadata["title"]; ok && t != "" {
			displayTitle = t
		}
		matches = append(matches, SemanticMatch{
			Title:      displayTitle,
			Similarity: float64(r.Similarity),
		})
	}
	return matches, nil
}

// Count returns the number of embeddings currently stored.
func (s *Store) Count() int {
	return s.collection.Count()
}

// CosineSimilarity reports the cosine similarity between two embedding
// vectors, used when a caller already holds both vectors and wants to
// avoid a round trip through the collection.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
