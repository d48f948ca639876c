package internal

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// TypeCache memoizes per-type metadata such as struct field plans and
// compiled schemas. Entries are computed once and never evicted: the set of
// Go types a program decodes into is fixed at compile time.
type TypeCache[V any] struct {
	data sync.Map // reflect.Type -> V

	hitCount  int64 // atomic
	missCount int64 // atomic
	size      int64 // atomic
}

// NewTypeCache creates an empty cache.
func NewTypeCache[V any]() *TypeCache[V] {
	return &TypeCache[V]{}
}

// Load returns the entry for t.
func (c *TypeCache[V]) Load(t reflect.Type) (V, bool) {
	if v, ok := c.data.Load(t); ok {
		atomic.AddInt64(&c.hitCount, 1)
		return v.(V), true
	}
	atomic.AddInt64(&c.missCount, 1)
	var zero V
	return zero, false
}

// Store records v for t unless another goroutine got there first, and
// returns the entry that is now cached.
func (c *TypeCache[V]) Store(t reflect.Type, v V) V {
	actual, loaded := c.data.LoadOrStore(t, v)
	if !loaded {
		atomic.AddInt64(&c.size, 1)
	}
	return actual.(V)
}

// LoadOrCompute returns the entry for t, computing it with fn on a miss.
func (c *TypeCache[V]) LoadOrCompute(t reflect.Type, fn func() V) V {
	if v, ok := c.Load(t); ok {
		return v
	}
	return c.Store(t, fn())
}

// GetStats returns cache statistics.
func (c *TypeCache[V]) GetStats() CacheStats {
	hits := atomic.LoadInt64(&c.hitCount)
	misses := atomic.LoadInt64(&c.missCount)
	total := hits + misses

	var ratio float64
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return CacheStats{
		Size:      atomic.LoadInt64(&c.size),
		HitCount:  hits,
		MissCount: misses,
		HitRatio:  ratio,
	}
}

// CacheStats represents cache statistics
type CacheStats struct {
	Size      int64   `json:"size"`
	HitCount  int64   `json:"hit_count"`
	MissCount int64   `json:"miss_count"`
	HitRatio  float64 `json:"hit_ratio"`
}
