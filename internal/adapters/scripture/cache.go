package scripture

import (
	"container/list"
	"sync"
	"time"
)

// lruCache is a bounded verse cache with TTL expiry. Expired entries are
// treated as absent even while still capacity-resident. Safe for concurrent
// use; a miss-and-refetch is only a performance cost, never a correctness one
type lruCache struct {
	mu    sync.Mutex
	max   int
	ttl   time.Duration
	order *list.List
	items map[string]*list.Element
	now   func() time.Time
}

type lruEntry struct {
	key     string
	verse   Verse
	fetched time.Time
}

func newLRUCache(max int, ttl time.Duration) *lruCache {
	return &lruCache{
		max:   max,
		ttl:   ttl,
		order: list.New(),
		items: make(map[string]*list.Element, max),
		now:   time.Now,
	}
}

func (c *lruCache) get(key string) (Verse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return Verse{}, false
	}
	ent := el.Value.(*lruEntry)
	if c.now().Sub(ent.fetched) > c.ttl {
		c.order.Remove(el)
		delete(c.items, key)
		return Verse{}, false
	}
	c.order.MoveToFront(el)
	return ent.verse, true
}

func (c *lruCache) set(key string, v Verse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*lruEntry)
		ent.verse = v
		ent.fetched = c.now()
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.max {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
	el := c.order.PushFront(&lruEntry{key: key, verse: v, fetched: c.now()})
	c.items[key] = el
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
