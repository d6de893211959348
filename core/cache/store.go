package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the byte-level cache used for filter options and suggestions. Values are
// JSON documents so the same entries can live in-process or in Redis.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryStore adapts Cache to Store.
type MemoryStore struct {
	c   *Cache
	tag string
}

// NewMemoryStore tags every entry with tag so callers can drop them together.
func NewMemoryStore(c *Cache, tag string) *MemoryStore {
	if c == nil {
		c = GetInstance()
	}
	return &MemoryStore{c: c, tag: tag}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var tags []string
	if s.tag != "" {
		tags = []string{s.tag}
	}
	s.c.Set(key, value, ttl, tags)
	return nil
}

// Purge drops every entry written through this store.
func (s *MemoryStore) Purge() {
	if s.tag != "" {
		s.c.DeleteByTag(s.tag)
	}
}

// GetJSON decodes a cached document into v. A decode failure counts as a miss.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) bool {
	if s == nil {
		return false
	}
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw, ttl)
}
