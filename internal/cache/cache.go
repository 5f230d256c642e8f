// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"
)

// ErrEmptyKey is returned when a caller passes an empty cache key. An empty
// key is a programming error on the call site, not a miss.
var ErrEmptyKey = errors.New("cache key must not be empty")

// Entry is a single cached value. Expired entries are dropped lazily on the
// next read that touches them.
type Entry struct {
	// Key is the clear-text key, without the namespace prefix.
	Key string
	// Value is whatever the producer returned.
	Value any
	// CreatedAt is the insertion time. Diagnostics only.
	CreatedAt time.Time
	// ExpiresAt is the moment the entry stops being served.
	ExpiresAt time.Time
}

// expired reports whether the entry is past its TTL at the given instant.
func (e Entry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Stats are cumulative counters over the cache's lifetime. EntryCount only
// counts live (non-expired) entries.
type Stats struct {
	Hits       uint64
	Misses     uint64
	EntryCount int
}

// Options configures a Cache at construction time.
type Options struct {
	// Namespace is prepended to every key so that two caches sharing log
	// output (or a future shared store) can't collide.
	Namespace string
	// DefaultTTL applies when a GetOrFetch call doesn't carry its own.
	DefaultTTL time.Duration
	// Coalesce collapses concurrent misses for the same key into a single
	// producer call. Off by default: the historical contract is that each
	// concurrent caller invokes its own producer and the last write wins.
	Coalesce bool
}

// Producer loads a value on a cache miss. Errors propagate to the caller
// untouched and nothing is stored.
type Producer func(ctx context.Context) (any, error)

// FetchOption tweaks a single GetOrFetch call.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	ttl    time.Duration
	bypass bool
}

// WithTTL overrides the cache's DefaultTTL for this call only.
func WithTTL(ttl time.Duration) FetchOption {
	return func(fc *fetchConfig) { fc.ttl = ttl }
}

// Bypass skips the lookup AND the store for this call. The producer always
// runs and its result is never written, so bypass can't pollute the cache or
// serve stale data.
func Bypass() FetchOption {
	return func(fc *fetchConfig) { fc.bypass = true }
}

// Cache is a process-local key-value store with per-entry expiry. Construct
// one per logical consumer with New and pass it around explicitly; there is
// no package-level instance.
type Cache struct {
	opts Options

	mu       sync.RWMutex
	entries  map[string]Entry
	hits     uint64
	misses   uint64
	disabled bool

	group singleflight.Group
}

// New returns an empty Cache. A zero DefaultTTL means entries expire
// immediately unless the call site supplies its own TTL, so most callers
// want at least FiveMinutes.
func New(opts Options) *Cache {
	return &Cache{
		opts:    opts,
		entries: make(map[string]Entry),
	}
}

// Namespace returns the namespace this cache was built with.
func (c *Cache) Namespace() string {
	return c.opts.Namespace
}

// GetOrFetch returns the cached value for key, or runs produce and stores
// its result for ttl. A bypassed call (per-call Bypass option or a globally
// disabled cache) always runs the producer and never writes the store.
func (c *Cache) GetOrFetch(ctx context.Context, key string, produce Producer, opts ...FetchOption) (any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	fc := fetchConfig{ttl: c.opts.DefaultTTL}
	for _, opt := range opts {
		opt(&fc)
	}

	if fc.bypass || !c.Enabled() {
		// Every bypassed read behaves as a miss. The store is left alone so
		// that re-enabling serves the previously cached values again.
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		log.Debugf("cache bypass: %s", c.scoped(key))
		return produce(ctx)
	}

	now := time.Now()

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if !entry.expired(now) {
			c.hits++
			c.mu.Unlock()
			log.Debugf("cache hit: %s", c.scoped(key))
			return entry.Value, nil
		}
		// Lazy expiry.
		delete(c.entries, key)
	}
	c.misses++
	c.mu.Unlock()

	log.Debugf("cache miss: %s", c.scoped(key))

	if c.opts.Coalesce {
		value, err, _ := c.group.Do(key, func() (any, error) {
			return c.fetchAndStore(ctx, key, produce, fc.ttl)
		})
		return value, err
	}

	return c.fetchAndStore(ctx, key, produce, fc.ttl)
}

// fetchAndStore runs the producer and, on success, writes the entry. Two
// racing misses for the same key each run their producer; whichever finishes
// last owns the stored entry.
func (c *Cache) fetchAndStore(ctx context.Context, key string, produce Producer, ttl time.Duration) (any, error) {
	value, err := produce(ctx)
	if err != nil {
		// No negative caching. The failed key stays absent.
		return nil, err
	}

	now := time.Now()
	c.mu.Lock()
	c.entries[key] = Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	c.mu.Unlock()

	return value, nil
}

// Invalidate removes the entry for key. Returns whether anything was
// removed. Missing keys are a no-op, not an error.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	log.Debugf("cache invalidated: %s", c.scoped(key))
	return true
}

// InvalidatePrefix removes every entry whose key begins with prefix and
// returns the count removed. This is the common write-path eviction: after a
// contact is created, InvalidatePrefix("contacts") drops every cached
// contact read.
func (c *Cache) InvalidatePrefix(prefix string) int {
	return c.invalidateMatching(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// InvalidatePattern removes every entry whose key matches the regular
// expression and returns the count removed. The pattern is matched against
// the clear key, never the namespace prefix.
func (c *Cache) InvalidatePattern(pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, err
	}
	return c.invalidateMatching(re.MatchString), nil
}

func (c *Cache) invalidateMatching(match func(string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if match(key) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		log.Debugf("cache invalidated %d entries in %s", removed, c.opts.Namespace)
	}
	return removed
}

// Clear removes all entries and returns the count removed. Stats are left
// alone; use ResetStats for those.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]Entry)
	return removed
}

// Disable makes every subsequent GetOrFetch behave as a bypass until Enable
// is called. Entries are retained, not cleared.
func (c *Cache) Disable() {
	c.mu.Lock()
	c.disabled = true
	c.mu.Unlock()
}

// Enable re-enables lookups. Entries stored before Disable that have not
// expired are served again.
func (c *Cache) Enable() {
	c.mu.Lock()
	c.disabled = false
	c.mu.Unlock()
}

// Enabled reports whether lookups are currently allowed.
func (c *Cache) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.disabled
}

// Stats returns a snapshot of the counters. Expired-but-unpurged entries are
// excluded from EntryCount (and dropped while we're at it).
func (c *Cache) Stats() Stats {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	live := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			continue
		}
		live++
	}

	return Stats{
		Hits:       c.hits,
		Misses:     c.misses,
		EntryCount: live,
	}
}

// ResetStats zeroes the hit/miss counters without touching entries.
func (c *Cache) ResetStats() {
	c.mu.Lock()
	c.hits = 0
	c.misses = 0
	c.mu.Unlock()
}

// scoped returns the namespaced form of a key for log messages.
func (c *Cache) scoped(key string) string {
	if c.opts.Namespace == "" {
		return key
	}
	return c.opts.Namespace + ":" + key
}
