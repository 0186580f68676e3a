// Package cache implements a Redis-backed read-through cache in front of
// a verify.TitleRepository, so repeated verification bursts against the
// same registry snapshot don't round-trip to Postgres on every request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurorareg/titlesentry/pkg/verify"
)

const (
	allTitlesKey = "titlesentry:all_titles"
	defaultTTL   = 5 * time.Minute
)

// Cache wraps a verify.TitleRepository with a Redis-backed snapshot of
// GetAllTitles, invalidated on every AddToCache write.
type Cache struct {
	client *redis.Client
	back   verify.TitleRepository
	ttl    time.Duration
}

// New wraps back with a read-through cache backed by client, using ttl as
// the snapshot lifetime (defaultTTL if zero).
func New(client *redis.Client, back verify.TitleRepository, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, back: back, ttl: ttl}
}

// GetAllTitles implements verify.TitleRepository, serving from Redis when
// a fresh snapshot exists and falling back to the backing repository (and
// repopulating Redis) on a miss or decode failure.
func (c *Cache) GetAllTitles(ctx context.Context) ([]verify.TitleRecord, error) {
	if records, ok := c.readSnapshot(ctx); ok {
		return records, nil
	}

	records, err := c.back.GetAllTitles(ctx)
	if err != nil {
		return nil, err
	}

	c.writeSnapshot(ctx, records)
	return records, nil
}

// AddToCache implements verify.TitleRepository: writes through to the
// backing repository, then invalidates the cached snapshot so the next
// GetAllTitles call observes the new title.
func (c *Cache) AddToCache(ctx context.Context, record verify.TitleRecord) error {
	if err := c.back.AddToCache(ctx, record); err != nil {
		return err
	}
	if err := c.client.Del(ctx, allTitlesKey).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("invalidating title snapshot: %w", err)
	}
	return nil
}

func (c *Cache) readSnapshot(ctx context.Context) ([]verify.TitleRecord, bool) {
	raw, err := c.client.Get(ctx, allTitlesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var records []verify.TitleRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	return records, true
}

func (c *Cache) writeSnapshot(ctx context.Context, records []verify.TitleRecord) {
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	// Best-effort: a failed cache write must not fail the caller's request,
	// the backing repository already returned the authoritative answer.
	_ = c.client.Set(ctx, allTitlesKey, raw, c.ttl).Err()
}
