package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// defaultConceptClusters is the literal curated cluster table: each
// cluster-root maps to a set of variant tokens treated as conceptually
// equivalent. A token appears in at most one cluster.
var defaultConceptClusters = map[string][]string{
	"morning":     {"morning", "dawn", "sunrise", "prabhat", "bhor", "ark"},
	"evening":     {"evening", "sandhya", "dusk", "sunset", "nightfall"},
	"news":        {"news", "samachar", "khabar", "shabdan"},
	"daily":       {"daily", "dainik", "pratidin", "rozana"},
	"weekly":      {"weekly", "saptahik", "hafta"},
	"government":  {"governance", "rajya", "shashan", "sarkari", "public"},
	"crime":       {"crime", "police", "scandal", "corruption", "apradh"},
	"health":      {"health", "swasthya", "medical", "ayurved", "vital"},
	"business":    {"business", "vyapar", "trade", "commerce", "economy"},
	"sports":      {"sports", "khel", "kridan", "stadium"},
	"educational": {"education", "shiksha", "vidya", "study", "learning"},
	"mirror":      {"mirror", "darpan", "reflection", "aaina"},
	"herald":      {"herald", "messenger", "doot", "varta", "post"},
	"chronicle":   {"chronicle", "history", "itihas", "patrika", "journal"},
}

// ConceptClusters is an immutable, process-wide view over the cluster
// table: the cluster-root each token belongs to, and the full variant list
// per root.
type ConceptClusters struct {
	tokenToRoot map[string]string
	rootToTokens map[string][]string
}

var (
	conceptClusters   *ConceptClusters
	conceptClustersMu sync.RWMutex
)

func buildConceptClusters(clusters map[string][]string) *ConceptClusters {
	cc := &ConceptClusters{
		tokenToRoot:  make(map[string]string),
		rootToTokens: make(map[string][]string),
	}
	for root, variants := range clusters {
		cc.rootToTokens[root] = variants
		for _, v := range variants {
			cc.tokenToRoot[v] = root
		}
	}
	return cc
}

// LoadConceptClusters loads a cluster-root → variants mapping from a YAML
// file under configDir. A missing file is not an error; it falls back to
// the literal defaultConceptClusters table.
func LoadConceptClusters(configDir string) error {
	path := filepath.Join(configDir, "concept_clusters.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read concept clusters file: %w", err)
	}

	var doc map[string][]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse concept clusters: %w", err)
	}

	conceptClustersMu.Lock()
	conceptClusters = buildConceptClusters(doc)
	conceptClustersMu.Unlock()
	return nil
}

// ResetConceptClusters clears the loaded table, restoring the literal
// defaults. Used in tests.
func ResetConceptClusters() {
	conceptClustersMu.Lock()
	conceptClusters = nil
	conceptClustersMu.Unlock()
}

// GetConceptClusters returns the loaded cluster table, or the literal
// defaults if none was loaded.
func GetConceptClusters() *ConceptClusters {
	conceptClustersMu.RLock()
	defer conceptClustersMu.RUnlock()

	if conceptClusters != nil {
		return conceptClusters
	}
	return buildConceptClusters(defaultConceptClusters)
}

// Root returns the cluster root for token, or token itself if it belongs
// to no cluster.
func (cc *ConceptClusters) Root(token string) string {
	if root, ok := cc.tokenToRoot[strings.ToLower(token)]; ok {
		return root
	}
	return token
}

// GetClusterAlternatives returns the other variants in token's cluster,
// excluding token itself, preserving the case of the replacement.
func (cc *ConceptClusters) GetClusterAlternatives(token string) []string {
	lower := strings.ToLower(token)
	root, ok := cc.tokenToRoot[lower]
	if !ok {
		return nil
	}
	variants := cc.rootToTokens[root]
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v != lower {
			out = append(out, v)
		}
	}
	return out
}

// ConceptClusterSimilarity tokenizes each side (tokens of length > 3), maps
// each token to its cluster root, and returns 1.0 if the two restricted
// token-root sets share any member, else 0.0 — a deliberately coarse
// boolean conceptual-overlap signal.
func ConceptClusterSimilarity(a, b string) float64 {
	cc := GetConceptClusters()
	rootsA := rootSet(cc, a)
	rootsB := rootSet(cc, b)
	for r := range rootsA {
		if rootsB[r] {
			return 1.0
		}
	}
	return 0.0
}

func rootSet(cc *ConceptClusters, s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if len(tok) <= 3 {
			continue
		}
		// Only tokens that are actual members of a curated cluster
		// participate in the overlap test; Root falls back to returning
		// tok unchanged for ordinary words, which would otherwise make any
		// shared non-cluster word register as a spurious semantic overlap.
		root, ok := cc.tokenToRoot[tok]
		if !ok {
			continue
		}
		out[root] = true
	}
	return out
}
