// Package cache provides a time-to-live cache for JSON payloads over pluggable storage backends.
//
// An entry is served only while now - created < TTL. Missing, expired and
// unreadable entries are all misses; the caller recomputes. Writers do not
// coordinate, the last write wins.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/early-innings/internal/metrics"
	"github.com/yourusername/early-innings/internal/models"
)

// Status is the outcome of a cache read
type Status int

const (
	StatusMiss Status = iota
	StatusHit
	StatusExpired
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusExpired:
		return "expired"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "miss"
	}
}

// Hit reports whether the read produced a usable payload
func (s Status) Hit() bool {
	return s == StatusHit
}

var (
	// ErrEntryNotFound is returned by backends when no entry exists for a key
	ErrEntryNotFound = errors.New("cache entry not found")
	// ErrCorruptEntry is returned by backends when a stored entry cannot be decoded
	ErrCorruptEntry = errors.New("cache entry corrupt")
)

// Entry is a stored payload with its creation time
type Entry struct {
	Payload   []byte
	CreatedAt time.Time
}

// Backend is the storage behind a TTLCache. Backends do not enforce the TTL.
type Backend interface {
	Read(ctx context.Context, key string) (Entry, error)
	Write(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Option configures a TTLCache
type Option func(*TTLCache)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) {
		c.now = now
	}
}

// TTLCache stores JSON-encoded values and serves them until they are older than the TTL
type TTLCache struct {
	name    string
	backend Backend
	ttl     time.Duration
	now     func() time.Time
	log     *logrus.Entry
}

// New creates a cache named name (used in logs and metrics)
func New(name string, backend Backend, ttl time.Duration, logger *logrus.Logger, opts ...Option) *TTLCache {
	c := &TTLCache{
		name:    name,
		backend: backend,
		ttl:     ttl,
		now:     time.Now,
		log:     logger.WithFields(logrus.Fields{"component": "cache", "cache": name}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the cache name
func (c *TTLCache) Name() string { return c.name }

// TTL returns the configured time to live
func (c *TTLCache) TTL() time.Duration { return c.ttl }

// Get decodes the entry for key into dst. dst is only written on StatusHit.
func (c *TTLCache) Get(ctx context.Context, key string, dst any) Status {
	status := c.get(ctx, key, dst)
	metrics.RecordCacheLookup(c.name, status.String())
	return status
}

func (c *TTLCache) get(ctx context.Context, key string, dst any) Status {
	entry, err := c.backend.Read(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, ErrEntryNotFound):
		return StatusMiss
	default:
		c.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Unreadable cache entry, treating as miss")
		return StatusCorrupt
	}

	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		return StatusExpired
	}

	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		c.log.WithField("key", key).Error("Cache destination must be a non-nil pointer")
		return StatusCorrupt
	}

	// decode into a fresh value so a partial decode never leaks into dst
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(entry.Payload, fresh.Interface()); err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Corrupt cache entry, treating as miss")
		return StatusCorrupt
	}
	target.Elem().Set(fresh.Elem())

	c.log.WithField("key", key).Debug("Cache hit")
	return StatusHit
}

// Put stores value under key, stamped with the current time. Failures wrap
// models.ErrTransientIO; callers log them and carry on.
func (c *TTLCache) Put(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", models.ErrTransientIO, key, err)
	}

	if err := c.backend.Write(ctx, key, Entry{Payload: payload, CreatedAt: c.now()}); err != nil {
		metrics.RecordCacheWriteError(c.name)
		return fmt.Errorf("%w: write %s: %v", models.ErrTransientIO, key, err)
	}
	return nil
}

// Clear removes a single entry. Clearing a missing key is not an error.
func (c *TTLCache) Clear(ctx context.Context, key string) error {
	if err := c.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrEntryNotFound) {
		return fmt.Errorf("%w: delete %s: %v", models.ErrTransientIO, key, err)
	}
	return nil
}

// ClearAll removes every entry held by this cache instance
func (c *TTLCache) ClearAll(ctx context.Context) error {
	if err := c.backend.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: clear %s: %v", models.ErrTransientIO, c.name, err)
	}
	metrics.RecordCacheClear(c.name)
	c.log.Info("Cache cleared")
	return nil
}

// Ping checks that the backing storage is usable
func (c *TTLCache) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}
