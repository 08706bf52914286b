package search

import (
	"container/list"
	"sync"

	"github.com/katalvlaran/hexnum/walk"
)

// resultCache is a size-bounded least-recently-used map from signed target to
// pattern. A capacity of 0 disables it.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recent; values are *cacheEntry
	items    map[int64]*list.Element
	evicted  int64
}

type cacheEntry struct {
	key  int64
	path walk.Path
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[int64]*list.Element),
	}
}

func (c *resultCache) get(key int64) (walk.Path, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return walk.Path{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).path, true
}

// put inserts or refreshes key and evicts the oldest entries past capacity.
func (c *resultCache) put(key int64, p walk.Path) {
	if c.capacity == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).path = p
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&cacheEntry{key: key, path: p})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
		c.evicted++
	}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *resultCache) evictions() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evicted
}

func (c *resultCache) clear() {
	c.mu.Lock()
	c.order.Init()
	clear(c.items)
	c.mu.Unlock()
}
