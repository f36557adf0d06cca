// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"io"
)

// Cache owns the build-once, serve-many corpus lifecycle. It is an
// explicit object rather than package state so callers and tests can hold
// isolated instances. At most one build runs at a time: concurrent Get
// calls during a build coalesce behind the mutex and observe the same
// result. A cached Corpus is an immutable snapshot readers share freely.
type Cache struct {
	builder *Builder

	mu     chan struct{} // 1-slot semaphore; held for the duration of a build
	corpus *Corpus
}

// NewCache returns an empty Cache that builds through b on first use.
func NewCache(b *Builder) *Cache {
	c := &Cache{builder: b, mu: make(chan struct{}, 1)}
	c.mu <- struct{}{}
	return c
}

// lock acquires the cache semaphore, honoring ctx cancellation so callers
// waiting on an in-flight build remain retractable.
func (c *Cache) lock(ctx context.Context) error {
	select {
	case <-c.mu:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cache) unlock() {
	c.mu <- struct{}{}
}

// Get returns the cached Corpus, building it first if none exists.
// A failed build leaves the cache untouched.
func (c *Cache) Get(ctx context.Context, w io.Writer) (*Corpus, error) {
	if err := c.lock(ctx); err != nil {
		return nil, err
	}
	defer c.unlock()

	if c.corpus != nil {
		return c.corpus, nil
	}

	built, err := c.builder.Build(ctx, w)
	if err != nil {
		return nil, err
	}
	c.corpus = built
	return built, nil
}

// Cached returns the current corpus without triggering a build. The second
// return value reports whether a corpus is cached.
func (c *Cache) Cached() (*Corpus, bool) {
	select {
	case <-c.mu:
	default:
		return nil, false // build in flight; nothing stable to report
	}
	defer c.unlock()
	return c.corpus, c.corpus != nil
}

// Rebuild forces a fresh build and swaps it in atomically on success.
// On failure the previously cached corpus (if any) is preserved, so a
// caller may keep serving stale data at its own discretion.
func (c *Cache) Rebuild(ctx context.Context, w io.Writer) (*Corpus, error) {
	if err := c.lock(ctx); err != nil {
		return nil, err
	}
	defer c.unlock()

	built, err := c.builder.Build(ctx, w)
	if err != nil {
		return nil, err
	}
	c.corpus = built
	return built, nil
}

// Invalidate drops the cached corpus. The next Get builds anew.
func (c *Cache) Invalidate() {
	<-c.mu
	c.corpus = nil
	c.unlock()
}
