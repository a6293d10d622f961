// Package cache memoizes per-expression results, such as lowered SQL, keyed
// on the structure of the expression tree.
//
// Lookups hash the tree with Expr.Hash and confirm a hit with
// queryir.DeepEqual, so two independently built but identical trees share
// an entry while hash collisions never alias.
package cache

import (
	"container/list"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roach88/pgqlir/internal/queryir"
)

// DefaultCapacity is used when New is given a capacity below 1.
const DefaultCapacity = 256

// Entry is one cached value.
type Entry struct {
	// ID identifies the entry in logs. It changes when an entry is replaced.
	ID    string
	Expr  queryir.Expr
	Value any
}

// Stats counts cache traffic since creation.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Cache is a bounded LRU cache of expression trees.
// All methods are safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	lru      *list.List                // front is most recently used; values are *Entry
	buckets  map[uint64][]*list.Element // keyed on Expr.Hash
	stats    Stats

	logger *zap.Logger
	newID  func() string
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger for hit, miss and eviction events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator replaces uuid.NewString as the source of entry IDs.
func WithIDGenerator(next func() string) Option {
	return func(c *Cache) {
		if next != nil {
			c.newID = next
		}
	}
}

// New creates a cache holding at most capacity entries.
func New(capacity int, opts ...Option) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	c := &Cache{
		capacity: capacity,
		lru:      list.New(),
		buckets:  make(map[uint64][]*list.Element),
		logger:   zap.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry stored for a tree equal to e and marks it as
// recently used.
func (c *Cache) Get(e queryir.Expr) (Entry, bool) {
	if e == nil {
		return Entry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem := c.find(e)
	if elem == nil {
		c.stats.Misses++
		c.logger.Debug("cache miss", zap.Uint64("hash", e.Hash()), zap.Stringer("kind", e.Kind()))
		return Entry{}, false
	}
	c.stats.Hits++
	c.lru.MoveToFront(elem)
	entry := elem.Value.(*Entry)
	c.logger.Debug("cache hit", zap.String("entry_id", entry.ID), zap.Uint64("hash", e.Hash()))
	return *entry, true
}

// Put stores value for e, replacing the value of an equal tree, and evicts
// the least recently used entry when the cache is full.
func (c *Cache) Put(e queryir.Expr, value any) Entry {
	if e == nil {
		return Entry{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry{ID: c.newID(), Expr: e, Value: value}
	if elem := c.find(e); elem != nil {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		c.logger.Debug("cache replace", zap.String("entry_id", entry.ID), zap.Uint64("hash", e.Hash()))
		return *entry
	}

	for c.lru.Len() >= c.capacity {
		c.evict()
	}
	h := e.Hash()
	c.buckets[h] = append(c.buckets[h], c.lru.PushFront(entry))
	c.logger.Debug("cache put", zap.String("entry_id", entry.ID), zap.Uint64("hash", h))
	return *entry
}

// GetOrCompute returns the cached value for e, or calls compute and caches
// its result. Errors are returned without caching. compute runs without the
// lock held, so concurrent callers may compute the same value twice.
func (c *Cache) GetOrCompute(e queryir.Expr, compute func(queryir.Expr) (any, error)) (any, error) {
	if entry, ok := c.Get(e); ok {
		return entry.Value, nil
	}
	value, err := compute(e)
	if err != nil {
		return nil, err
	}
	c.Put(e, value)
	return value, nil
}

// Remove drops the entry for a tree equal to e. It reports whether one
// existed.
func (c *Cache) Remove(e queryir.Expr) bool {
	if e == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem := c.find(e)
	if elem == nil {
		return false
	}
	c.unlink(elem)
	return true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the traffic counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Init()
	c.buckets = make(map[uint64][]*list.Element)
}

// find must be called with mu held.
func (c *Cache) find(e queryir.Expr) *list.Element {
	for _, elem := range c.buckets[e.Hash()] {
		if queryir.DeepEqual(elem.Value.(*Entry).Expr, e) {
			return elem
		}
	}
	return nil
}

func (c *Cache) evict() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*Entry)
	c.unlink(elem)
	c.stats.Evictions++
	c.logger.Debug("cache evict", zap.String("entry_id", entry.ID), zap.Uint64("hash", entry.Expr.Hash()))
}

func (c *Cache) unlink(elem *list.Element) {
	h := elem.Value.(*Entry).Expr.Hash()
	bucket := c.buckets[h]
	for i, candidate := range bucket {
		if candidate == elem {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, h)
	} else {
		c.buckets[h] = bucket
	}
	c.lru.Remove(elem)
}
