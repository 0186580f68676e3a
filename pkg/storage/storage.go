// Package storage implements the pgx-backed TitleRepository: the
// durable registry of previously accepted titles the verification core
// loads at startup and appends to on every acceptance.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurorareg/titlesentry/pkg/verify"
)

// Store is a pgx connection pool wrapping the title_records table.
type Store struct {
	pool *pgxpool.Pool
}

// New opens a pool against dsn, pings it, and ensures the schema exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS title_records (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		normalized_title TEXT NOT NULL,
		canonical_title TEXT NOT NULL,
		embedding REAL[],
		registered_at TIMESTAMP NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_title_records_normalized ON title_records(normalized_title);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_title_records_canonical ON title_records(canonical_title);`

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("running schema migration: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// GetAllTitles implements verify.TitleRepository.
func (s *Store) GetAllTitles(ctx context.Context) ([]verify.TitleRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title, normalized_title, canonical_title, registered_at
		FROM title_records ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying title_records: %w", err)
	}
	defer rows.Close()

	var records []verify.TitleRecord
	for rows.Next() {
		var rec verify.TitleRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.NormalizedTitle, &rec.CanonicalTitle, &rec.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scanning title_records row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating title_records: %w", err)
	}
	return records, nil
}

// AddToCache implements verify.TitleRepository, inserting the accepted
// title. The database generates the ID and registration time; they are
// scanned into this function's copy of record and are not returned to the
// caller.
func (s *Store) AddToCache(ctx context.Context, record verify.TitleRecord) error {
	const insert = `INSERT INTO title_records (title, normalized_title, canonical_title)
		VALUES ($1, $2, $3)
		ON CONFLICT (canonical_title) DO NOTHING
		RETURNING id, registered_at`

	err := s.pool.QueryRow(ctx, insert, record.Title, record.NormalizedTitle, record.CanonicalTitle).
		Scan(&record.ID, &record.RegisteredAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			// canonical title already registered; a concurrent submission won
			// the race, this is not a failure of the caller's intent.
			return nil
		}
		return fmt.Errorf("inserting title record: %w", err)
	}
	return nil
}

// FindByCanonical looks up a single record by its canonical form without
// rescanning the whole table.
func (s *Store) FindByCanonical(ctx context.Context, canonical string) (verify.TitleRecord, bool, error) {
	const query = `SELECT id, title, normalized_title, canonical_title, registered_at
		FROM title_records WHERE canonical_title = $1`

	var rec verify.TitleRecord
	err := s.pool.QueryRow(ctx, query, canonical).
		Scan(&rec.ID, &rec.Title, &rec.NormalizedTitle, &rec.CanonicalTitle, &rec.RegisteredAt)
	if err == pgx.ErrNoRows {
		return verify.TitleRecord{}, false, nil
	}
	if err != nil {
		return verify.TitleRecord{}, false, fmt.Errorf("looking up canonical title: %w", err)
	}
	return rec, true, nil
}
