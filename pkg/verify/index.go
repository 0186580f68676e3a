package verify

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// InvertedIndex maps token → posting list of title ids, with per-token
// document frequency and an id → record lookup. It is owned by the core,
// built once at startup from the full title set, and lives for the process
// Mutation (title acceptance) is funnelled through Append,
// which takes a single write lock spanning all three maps so readers never
// observe a partially updated posting.
type InvertedIndex struct {
	mu         sync.RWMutex
	postings   map[string][]int64
	docFreq    map[string]int
	titlesMap  map[int64]TitleRecord
	totalDocs  int
}

// NewInvertedIndex builds an index from the full title set.
func NewInvertedIndex(records []TitleRecord) *InvertedIndex {
	idx := &InvertedIndex{
		postings:  make(map[string][]int64),
		docFreq:   make(map[string]int),
		titlesMap: make(map[int64]TitleRecord),
	}
	for _, r := range records {
		idx.index(r)
	}
	return idx
}

// index is the unlocked insertion primitive shared by NewInvertedIndex and
// Append.
func (idx *InvertedIndex) index(r TitleRecord) {
	idx.titlesMap[r.ID] = r
	idx.totalDocs++

	seen := make(map[string]bool)
	for _, tok := range strings.Fields(r.NormalizedTitle) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		idx.postings[tok] = append(idx.postings[tok], r.ID)
		idx.docFreq[tok]++
	}
}

// Append adds a newly accepted title to the index, atomically with respect
// to readers.
func (idx *InvertedIndex) Append(r TitleRecord) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.index(r)
}

// FilterByTokens returns the title records matching any of the given query
// tokens, ranked by summed IDF weight descending, with ties broken by
// lexicographic id.
func (idx *InvertedIndex) FilterByTokens(queryTokens []string) []TitleRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]bool)
	scores := make(map[int64]float64)
	for _, tok := range queryTokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		postings, ok := idx.postings[tok]
		if !ok {
			continue
		}
		df := idx.docFreq[tok]
		if df < 1 {
			df = 1
		}
		idf := math.Log1p(float64(idx.totalDocs) / float64(df))
		for _, id := range postings {
			scores[id] += idf
		}
	}

	ids := make([]int64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return strconv.FormatInt(ids[i], 10) < strconv.FormatInt(ids[j], 10)
	})

	out := make([]TitleRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := idx.titlesMap[id]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// AllRecords returns every indexed title record, used for the
// concatenation fast-path and the combination validator's existing-titles
// list.
func (idx *InvertedIndex) AllRecords() []TitleRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]TitleRecord, 0, len(idx.titlesMap))
	for _, r := range idx.titlesMap {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TotalDocs returns the number of indexed documents.
func (idx *InvertedIndex) TotalDocs() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.totalDocs
}
