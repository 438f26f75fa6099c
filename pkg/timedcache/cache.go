// Package timedcache is a read-through cache over a persistent backend where entries
// expire after a fixed freshness window.
package timedcache

import (
	"context"
	"time"
)

const DefaultTTL = time.Hour

// Outcome describes how a GetOrCompute call was served.
type Outcome string

const (
	OutcomeHit    Outcome = "hit"
	OutcomeMiss   Outcome = "miss"
	OutcomeStale  Outcome = "stale"
	OutcomeForced Outcome = "forced"
)

// Entry is a stored value and the time it was computed.
type Entry[V any] struct {
	Value     V
	UpdatedAt time.Time
}

// Backend persists entries. Load returns nil, nil when the key is absent.
type Backend[K comparable, V any] interface {
	Load(ctx context.Context, key K) (*Entry[V], error)
	Save(ctx context.Context, key K, entry Entry[V]) error
}

// Observer is told about every lookup and about backend failures that were absorbed.
type Observer[K comparable] interface {
	Lookup(key K, outcome Outcome)
	BackendError(key K, op string, err error)
}

type Option[K comparable, V any] func(*Cache[K, V])

func WithTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *Cache[K, V]) { c.now = now }
}

func WithObserver[K comparable, V any](o Observer[K]) Option[K, V] {
	return func(c *Cache[K, V]) { c.observer = o }
}

// Cache has no locking of its own: two callers missing on the same key both compute
// and both save, the last save wins.
type Cache[K comparable, V any] struct {
	backend  Backend[K, V]
	ttl      time.Duration
	now      func() time.Time
	observer Observer[K]
}

func New[K comparable, V any](backend Backend[K, V], opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		backend: backend,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) TTL() time.Duration {
	return c.ttl
}

// Fresh reports whether an entry computed at updatedAt is still inside the window.
func (c *Cache[K, V]) Fresh(updatedAt time.Time) bool {
	return c.now().Sub(updatedAt) < c.ttl
}

// GetOrCompute returns the stored entry when it is fresh and force is false. Otherwise
// it calls compute, saves the result stamped with the current time and returns it.
// A failing Load counts as a miss, a failing Save still returns the computed value.
func (c *Cache[K, V]) GetOrCompute(ctx context.Context, key K, compute func(ctx context.Context) (V, error), force bool) (Entry[V], error) {
	outcome := OutcomeForced
	if !force {
		outcome = OutcomeMiss
		stored, err := c.backend.Load(ctx, key)
		if err != nil {
			c.backendError(key, "load", err)
		} else if stored != nil {
			if c.Fresh(stored.UpdatedAt) {
				c.lookup(key, OutcomeHit)
				return *stored, nil
			}
			outcome = OutcomeStale
		}
	}
	c.lookup(key, outcome)

	value, err := compute(ctx)
	if err != nil {
		var zero Entry[V]
		return zero, err
	}

	entry := Entry[V]{Value: value, UpdatedAt: c.now()}
	if err := c.backend.Save(ctx, key, entry); err != nil {
		c.backendError(key, "save", err)
	}
	return entry, nil
}

func (c *Cache[K, V]) lookup(key K, outcome Outcome) {
	if c.observer != nil {
		c.observer.Lookup(key, outcome)
	}
}

func (c *Cache[K, V]) backendError(key K, op string, err error) {
	if c.observer != nil {
		c.observer.BackendError(key, op, err)
	}
}
