package verify

import "context"

// TitleRepository is the consumed contract for the registry's title store.
// Implementations live outside this package (see pkg/storage, pkg/cache);
// the core only ever reads through this interface and funnels acceptance
// writes through AddToCache.
type TitleRepository interface {
	// GetAllTitles returns every registered title. The core treats an empty,
	// non-error result as "no prior titles" (permits Accept when compliant);
	// an error is propagated to the caller as fatal, per the error-handling
	// design: the core will not silently operate on a stale or absent index.
	GetAllTitles(ctx context.Context) ([]TitleRecord, error)

	// AddToCache appends a newly accepted title so subsequent verifications
	// see it immediately.
	AddToCache(ctx context.Context, record TitleRecord) error
}

// InMemoryRepository is a minimal TitleRepository backed by a slice, useful
// for tests and for small deployments that don't need pkg/storage's pgx
// backing store.
type InMemoryRepository struct {
	records []TitleRecord
}

// NewInMemoryRepository returns a repository seeded with the given records.
func NewInMemoryRepository(records []TitleRecord) *InMemoryRepository {
	out := make([]TitleRecord, len(records))
	copy(out, records)
	return &InMemoryRepository{records: out}
}

func (r *InMemoryRepository) GetAllTitles(_ context.Context) ([]TitleRecord, error) {
	out := make([]TitleRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *InMemoryRepository) AddToCache(_ context.Context, record TitleRecord) error {
	r.records = append(r.records, record)
	return nil
}
