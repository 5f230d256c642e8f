// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

// countingProducer returns a producer that yields value and counts how many
// times it was actually invoked.
func countingProducer(value any) (Producer, *atomic.Int64) {
	var calls atomic.Int64
	return func(context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}, &calls
}

func TestGetOrFetch_ReadThrough(t *testing.T) {
	c := New(Options{Namespace: "test", DefaultTTL: OneHour})
	produce, calls := countingProducer("first")

	// First call misses and runs the producer exactly once.
	got, err := c.GetOrFetch(ctx, "invoices", produce)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, int64(1), calls.Load())

	// Second call is served from the store without touching the producer.
	got, err = c.GetOrFetch(ctx, "invoices", produce)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, int64(1), calls.Load())
}

func TestGetOrFetch_Expiry(t *testing.T) {
	c := New(Options{Namespace: "test", DefaultTTL: OneHour})
	produce, calls := countingProducer("v")

	_, err := c.GetOrFetch(ctx, "k", produce, WithTTL(10*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())

	time.Sleep(25 * time.Millisecond)

	// Past the TTL the entry is treated as absent and the producer runs again.
	_, err = c.GetOrFetch(ctx, "k", produce)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestGetOrFetch_BypassNeverStores(t *testing.T) {
	c := New(Options{Namespace: "test", DefaultTTL: OneHour})

	p1, _ := countingProducer("bypassed")
	p2, p2calls := countingProducer("stored")

	got, err := c.GetOrFetch(ctx, "k", p1, Bypass())
	require.NoError(t, err)
	assert.Equal(t, "bypassed", got)

	// The bypass call must not have written anything, so p2 runs.
	got, err = c.GetOrFetch(ctx, "k", p2)
	require.NoError(t, err)
	assert.Equal(t, "stored", got)
	assert.Equal(t, int64(1), p2calls.Load())
}

func TestGetOrFetch_EmptyKey(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	produce, calls := countingProducer("v")

	_, err := c.GetOrFetch(ctx, "", produce)
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Equal(t, int64(0), calls.Load())
}

func TestGetOrFetch_ProducerErrorNotCached(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	boom := errors.New("rate limited")

	var calls atomic.Int64
	failing := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, boom
	}

	_, err := c.GetOrFetch(ctx, "k", failing)
	assert.ErrorIs(t, err, boom)

	// No negative caching: the next call runs the producer again.
	_, err = c.GetOrFetch(ctx, "k", failing)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), calls.Load())

	assert.Equal(t, 0, c.Stats().EntryCount)
}

func TestInvalidate(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	produce, _ := countingProducer("v")

	_, err := c.GetOrFetch(ctx, "k", produce)
	require.NoError(t, err)

	assert.True(t, c.Invalidate("k"))
	// Second removal is a clean no-op.
	assert.False(t, c.Invalidate("k"))
	assert.False(t, c.Invalidate("never-existed"))
}

func TestInvalidatePrefix(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})

	pa, paCalls := countingProducer("a")
	pb, _ := countingProducer("b")
	pc, pcCalls := countingProducer("c")

	_, _ = c.GetOrFetch(ctx, "contacts:a", pa)
	_, _ = c.GetOrFetch(ctx, "contacts:b", pb)
	_, _ = c.GetOrFetch(ctx, "accounts:c", pc)

	removed := c.InvalidatePrefix("contacts")
	assert.Equal(t, 2, removed)

	// The accounts entry survived and is still a hit.
	_, err := c.GetOrFetch(ctx, "accounts:c", pc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pcCalls.Load())

	// The contacts entries are gone.
	_, err = c.GetOrFetch(ctx, "contacts:a", pa)
	require.NoError(t, err)
	assert.Equal(t, int64(2), paCalls.Load())
}

func TestInvalidatePattern(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	produce, _ := countingProducer("v")

	_, _ = c.GetOrFetch(ctx, "contacts:a", produce)
	_, _ = c.GetOrFetch(ctx, "contacts:b", produce)
	_, _ = c.GetOrFetch(ctx, "accounts:c", produce)

	removed, err := c.InvalidatePattern("^contacts")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Stats().EntryCount)

	// Zero matches is not an error.
	removed, err = c.InvalidatePattern("^payments")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	// A malformed regex is.
	_, err = c.InvalidatePattern("([")
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	produce, _ := countingProducer("v")

	_, _ = c.GetOrFetch(ctx, "a", produce)
	_, _ = c.GetOrFetch(ctx, "b", produce)

	assert.Equal(t, 2, c.Clear())
	assert.Equal(t, 0, c.Clear())

	// Stats survive a clear.
	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 0, stats.EntryCount)
}

func TestDisableEnableRoundTrip(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	produce, calls := countingProducer("v")

	_, err := c.GetOrFetch(ctx, "k", produce)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())

	c.Disable()
	assert.False(t, c.Enabled())

	// Disabled reads always run the producer, even with a live entry.
	_, err = c.GetOrFetch(ctx, "k", produce)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())

	c.Enable()

	// The entry stored before Disable is served again.
	_, err = c.GetOrFetch(ctx, "k", produce)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestStats(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour})
	produce, _ := countingProducer("v")

	// One miss, then one hit.
	_, _ = c.GetOrFetch(ctx, "k", produce)
	_, _ = c.GetOrFetch(ctx, "k", produce)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.EntryCount)

	// An expired-but-unpurged entry is excluded from EntryCount.
	_, _ = c.GetOrFetch(ctx, "short", produce, WithTTL(time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, c.Stats().EntryCount)

	c.ResetStats()
	stats = c.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
	assert.Equal(t, 1, stats.EntryCount)
}

func TestCoalesce(t *testing.T) {
	c := New(Options{DefaultTTL: OneHour, Coalesce: true})

	var calls atomic.Int64
	slow := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.GetOrFetch(ctx, "k", slow)
			assert.NoError(t, err)
			assert.Equal(t, "v", got)
		}()
	}
	wg.Wait()

	// Concurrent misses share one in-flight producer.
	assert.Equal(t, int64(1), calls.Load())
}

func TestKey_Determinism(t *testing.T) {
	// Field order must not matter and nil fields must be dropped.
	a := Key("list-contacts", map[string]any{"where": `Name=="A"`, "page": nil})
	b := Key("list-contacts", map[string]any{"page": nil, "where": `Name=="A"`})
	assert.Equal(t, a, b)
	assert.Equal(t, `list-contacts:where=Name=="A"`, a)
}

func TestKey_Shapes(t *testing.T) {
	assert.Equal(t, "list-accounts", Key("list-accounts", nil))
	assert.Equal(t, "list-accounts", Key("list-accounts", map[string]any{"where": nil}))
	assert.Equal(t,
		"list-invoices:page=2|status=AUTHORISED",
		Key("list-invoices", map[string]any{"status": "AUTHORISED", "page": 2}))

	// Composite values serialize with sorted keys via encoding/json.
	assert.Equal(t,
		`op:filter={"a":1,"b":2}`,
		Key("op", map[string]any{"filter": map[string]int{"b": 2, "a": 1}}))
}

func TestPresetTTL(t *testing.T) {
	ttl, ok := PresetTTL("one-hour")
	assert.True(t, ok)
	assert.Equal(t, OneHour, ttl)

	_, ok = PresetTTL("fortnight")
	assert.False(t, ok)
}
