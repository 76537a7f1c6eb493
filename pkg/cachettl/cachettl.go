package cachettl

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	ttl       time.Duration
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Cache is a concurrency safe map whose entries expire. A zero TTL never expires.
// When cleanupInterval is positive a background loop purges expired entries until Close.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	items      map[K]entry[V]
	defaultTTL time.Duration
	now        func() time.Time
	onPurge    func(removed int)

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func New[K comparable, V any](defaultTTL, cleanupInterval time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		items:      make(map[K]entry[V]),
		defaultTTL: defaultTTL,
		now:        time.Now,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.cleanupLoop(cleanupInterval)
	} else {
		close(c.done)
	}
	return c
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	e := entry[V]{value: value, ttl: ttl}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || e.expired(c.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Touch restarts the TTL of a live entry. It reports false for missing or expired keys.
func (c *Cache[K, V]) Touch(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	now := c.now()
	if !ok || e.expired(now) {
		return false
	}
	if e.ttl > 0 {
		e.expiresAt = now.Add(e.ttl)
		c.items[key] = e
	}
	return true
}

func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	return true
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	c.items = make(map[K]entry[V])
	c.mu.Unlock()
}

// Len counts live entries.
func (c *Cache[K, V]) Len() int {
	now := c.now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.items {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// OnPurge registers fn to run after PurgeExpired drops at least one entry.
// fn runs without the cache lock held, so it may call back into the cache.
func (c *Cache[K, V]) OnPurge(fn func(removed int)) {
	c.mu.Lock()
	c.onPurge = fn
	c.mu.Unlock()
}

// PurgeExpired removes expired entries and returns how many were dropped.
func (c *Cache[K, V]) PurgeExpired() int {
	now := c.now()
	c.mu.Lock()
	removed := 0
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
			removed++
		}
	}
	fn := c.onPurge
	c.mu.Unlock()
	if removed > 0 && fn != nil {
		fn(removed)
	}
	return removed
}

// Close stops the cleanup loop. Safe to call more than once.
func (c *Cache[K, V]) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
}

func (c *Cache[K, V]) cleanupLoop(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.PurgeExpired()
		case <-c.stop:
			return
		}
	}
}
