package catalog

import (
	"sync"

	"github.com/shopglow/storefront/internal/metrics"
)

// Snapshot is a point-in-time view of one fetch scope.
type Snapshot[T any] struct {
	Value T
	// Loading is true between Begin and the matching completion.
	Loading bool
	// Err is the stored failure message from the last completed fetch,
	// empty on success.
	Err string
	// Stale is true when Value predates a failed fetch: the payload is
	// retained on error so callers can keep rendering it, but it may be
	// outdated.
	Stale bool
	// Populated reports whether any fetch has ever succeeded.
	Populated bool
}

// Cache is a cache-of-one for a single fetch scope. Begin hands out a
// monotonically increasing sequence; a completion only applies when it
// carries the latest issued sequence, so an older in-flight fetch can
// never overwrite a newer result.
type Cache[T any] struct {
	mu        sync.Mutex
	seq       uint64
	value     T
	loading   bool
	errMsg    string
	stale     bool
	populated bool
}

// Begin marks the scope loading, clears the error, and returns the
// sequence the eventual completion must present.
func (c *Cache[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.loading = true
	c.errMsg = ""
	return c.seq
}

// Succeed stores the payload if seq is still the latest issued sequence.
// Returns false when the completion was stale and dropped.
func (c *Cache[T]) Succeed(seq uint64, value T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		metrics.CatalogStaleDropsTotal.Inc()
		return false
	}
	c.value = value
	c.loading = false
	c.errMsg = ""
	c.stale = false
	c.populated = true
	return true
}

// Fail stores the error message if seq is still the latest issued
// sequence. The previous payload is retained, flagged stale.
func (c *Cache[T]) Fail(seq uint64, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		metrics.CatalogStaleDropsTotal.Inc()
		return false
	}
	c.loading = false
	c.errMsg = msg
	c.stale = c.populated
	return true
}

// Clear resets the scope to empty-and-loading, used before navigating to
// a new scope so stale content never flashes. It also bumps the sequence,
// which invalidates any fetch still in flight.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.seq++
	c.value = zero
	c.loading = true
	c.errMsg = ""
	c.stale = false
	c.populated = false
}

// Snapshot returns the current view of the scope.
func (c *Cache[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot[T]{
		Value:     c.value,
		Loading:   c.loading,
		Err:       c.errMsg,
		Stale:     c.stale,
		Populated: c.populated,
	}
}
