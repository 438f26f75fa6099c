package timedcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	entries map[string]Entry[string]
	loadErr error
	saveErr error
	saves   int
}

func newMemBackend() *memBackend {
	return &memBackend{entries: map[string]Entry[string]{}}
}

func (b *memBackend) Load(ctx context.Context, key string) (*Entry[string], error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	e, ok := b.entries[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (b *memBackend) Save(ctx context.Context, key string, entry Entry[string]) error {
	b.saves++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.entries[key] = entry
	return nil
}

type recordingObserver struct {
	outcomes []Outcome
	errors   []string
}

func (o *recordingObserver) Lookup(key string, outcome Outcome) {
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) BackendError(key string, op string, err error) {
	o.errors = append(o.errors, op)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func counter(value string) (*int, func(ctx context.Context) (string, error)) {
	calls := 0
	return &calls, func(ctx context.Context) (string, error) {
		calls++
		return value, nil
	}
}

func newCache(b *memBackend, clock *fakeClock, obs *recordingObserver) *Cache[string, string] {
	return New[string, string](b,
		WithTTL[string, string](time.Hour),
		WithClock[string, string](clock.Now),
		WithObserver[string, string](obs),
	)
}

func TestGetOrCompute_FreshnessLaw(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	backend := newMemBackend()
	obs := &recordingObserver{}
	cache := newCache(backend, clock, obs)
	calls, compute := counter("Data Science")

	first, err := cache.GetOrCompute(ctx, "g1", compute, false)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	clock.t = clock.t.Add(59 * time.Minute)
	second, err := cache.GetOrCompute(ctx, "g1", compute, false)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls, "fresh entry must not recompute")
	assert.Equal(t, first, second)

	clock.t = clock.t.Add(time.Minute)
	third, err := cache.GetOrCompute(ctx, "g1", compute, false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "entry at exactly the ttl is stale")
	assert.Equal(t, clock.t, third.UpdatedAt)

	assert.Equal(t, []Outcome{OutcomeMiss, OutcomeHit, OutcomeStale}, obs.outcomes)
}

func TestGetOrCompute_ForceAlwaysRecomputes(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	backend := newMemBackend()
	obs := &recordingObserver{}
	cache := newCache(backend, clock, obs)
	calls, compute := counter("v")

	_, err := cache.GetOrCompute(ctx, "k", compute, false)
	require.NoError(t, err)
	_, err = cache.GetOrCompute(ctx, "k", compute, true)
	require.NoError(t, err)

	assert.Equal(t, 2, *calls)
	assert.Equal(t, 2, backend.saves)
	assert.Equal(t, []Outcome{OutcomeMiss, OutcomeForced}, obs.outcomes)
}

func TestGetOrCompute_LoadErrorIsAMiss(t *testing.T) {
	backend := newMemBackend()
	backend.loadErr = errors.New("connection reset")
	obs := &recordingObserver{}
	cache := newCache(backend, &fakeClock{t: time.Now()}, obs)
	calls, compute := counter("v")

	entry, err := cache.GetOrCompute(context.Background(), "k", compute, false)
	require.NoError(t, err)
	assert.Equal(t, "v", entry.Value)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{"load"}, obs.errors)
}

func TestGetOrCompute_SaveErrorStillReturnsValue(t *testing.T) {
	backend := newMemBackend()
	backend.saveErr = errors.New("read-only replica")
	obs := &recordingObserver{}
	cache := newCache(backend, &fakeClock{t: time.Now()}, obs)
	calls, compute := counter("v")

	entry, err := cache.GetOrCompute(context.Background(), "k", compute, false)
	require.NoError(t, err)
	assert.Equal(t, "v", entry.Value)
	assert.Equal(t, []string{"save"}, obs.errors)

	_, err = cache.GetOrCompute(context.Background(), "k", compute, false)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "nothing was stored so the next read recomputes")
}

func TestGetOrCompute_ComputeErrorIsReturned(t *testing.T) {
	backend := newMemBackend()
	cache := New[string, string](backend)

	_, err := cache.GetOrCompute(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", errors.New("embedding failed")
	}, false)
	assert.Error(t, err)
	assert.Equal(t, 0, backend.saves)
}

func TestNew_Defaults(t *testing.T) {
	cache := New[string, string](newMemBackend(), WithTTL[string, string](0))
	assert.Equal(t, DefaultTTL, cache.TTL())
	assert.True(t, cache.Fresh(time.Now()))
	assert.False(t, cache.Fresh(time.Now().Add(-2*time.Hour)))
}
