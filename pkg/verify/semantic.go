package verify

import "context"

// SemanticProvider computes a dense-embedding-based similarity between two
// titles, bounded to [0,1]. Per the core contract, a stronger
// embedding-based implementation can substitute for the concept-cluster
// table's coarse boolean signal without changing the fusion math: the
// orchestrator treats whichever source produced the semantic score as an
// opaque bounded value.
type SemanticProvider interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// SetSemanticProvider installs an optional embedding-based semantic
// signal. While set, it replaces the concept-cluster table for every
// candidate's semantic score, falling back to the concept-cluster table
// for any call that errors. Passing nil restores the concept-cluster
// table outright.
func (c *Core) SetSemanticProvider(p SemanticProvider) {
	c.semantic = p
}

// semanticSimilarity computes the semantic signal for one candidate,
// preferring the configured SemanticProvider and falling back to the
// concept-cluster table when no provider is set or the provider errors.
func (c *Core) semanticSimilarity(ctx context.Context, title, candTitle, normalized, candNormalized string) float64 {
	if c.semantic != nil {
		if v, err := c.semantic.Similarity(ctx, title, candTitle); err == nil {
			return v
		}
	}
	return ConceptClusterSimilarity(normalized, candNormalized)
}
