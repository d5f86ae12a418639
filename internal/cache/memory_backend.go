package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryBackend keeps entries in process memory. Items are evicted by go-cache
// after retention; the TTL itself is still checked by TTLCache.
type MemoryBackend struct {
	items *gocache.Cache
}

// NewMemoryBackend returns an in-memory backend. A retention of zero keeps
// items until they are deleted.
func NewMemoryBackend(retention time.Duration) *MemoryBackend {
	if retention <= 0 {
		return &MemoryBackend{items: gocache.New(gocache.NoExpiration, 0)}
	}
	return &MemoryBackend{items: gocache.New(retention, retention*2)}
}

func (b *MemoryBackend) Read(_ context.Context, key string) (Entry, error) {
	v, ok := b.items.Get(key)
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	entry, ok := v.(Entry)
	if !ok {
		return Entry{}, ErrCorruptEntry
	}
	payload := make([]byte, len(entry.Payload))
	copy(payload, entry.Payload)
	return Entry{Payload: payload, CreatedAt: entry.CreatedAt}, nil
}

func (b *MemoryBackend) Write(_ context.Context, key string, entry Entry) error {
	payload := make([]byte, len(entry.Payload))
	copy(payload, entry.Payload)
	b.items.SetDefault(key, Entry{Payload: payload, CreatedAt: entry.CreatedAt})
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.items.Delete(key)
	return nil
}

func (b *MemoryBackend) DeleteAll(_ context.Context) error {
	b.items.Flush()
	return nil
}

func (b *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of stored entries, including ones past their TTL
func (b *MemoryBackend) Len() int {
	return b.items.ItemCount()
}
