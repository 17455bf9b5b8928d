// Package resultcache memoizes filtered+sorted record lists by query
// signature. The cache is bounded with LRU eviction, and the dataset
// version is part of every key, so a catalog reload invalidates stale
// entries instead of serving them forever.
package resultcache

import (
	"container/list"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"video-catalog-service/internal/domain"
)

// DefaultCapacity is the default number of cached result lists.
const DefaultCapacity = 256

type entry struct {
	key     string
	records []domain.Record
}

// Cache is a bounded LRU of pre-pagination result lists. Entries are
// write-once per key (an identical query over an identical snapshot
// always produces an identical result), so Add is insert-if-absent.
// Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	logger   *zap.Logger
}

// New creates a cache. capacity <= 0 selects DefaultCapacity.
func New(capacity int, logger *zap.Logger) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
		logger:   logger,
	}
}

// Key builds the cache key from the dataset version and the query's
// canonical signature.
func Key(version uint64, signature string) string {
	return fmt.Sprintf("v%d|%s", version, signature)
}

// Get returns the cached result list for key, marking it recently used.
// Callers must treat the returned slice as read-only.
func (c *Cache) Get(key string) ([]domain.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)

	return el.Value.(*entry).records, true
}

// Add stores a result list under key if absent. An existing entry is
// kept as is; identical inputs always produce identical results.
func (c *Cache) Add(key string, records []domain.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return
	}

	c.items[key] = c.ll.PushFront(&entry{key: key, records: records})

	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest == nil {
			break
		}
		evicted := c.ll.Remove(oldest).(*entry)
		delete(c.items, evicted.key)
		c.logger.Debug("result cache eviction",
			zap.String("key", evicted.key),
		)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ll.Len()
}
