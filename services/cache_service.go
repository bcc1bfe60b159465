package services

import (
	"sync"
	"time"
)

// proxyCacheEntry represents a cached item with expiration
type proxyCacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *proxyCacheEntry) isExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// ProxyCache is a small in-memory TTL cache in front of the pass-through
// endpoints (profile, coupons, events), so repeated reads inside a short
// window do not hit the upstream again. The lobby snapshot does not live
// here; it has its own persisted slot in SnapshotStore.
type ProxyCache struct {
	cache      map[string]*proxyCacheEntry
	mutex      sync.RWMutex
	defaultTTL time.Duration
	maxSize    int
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewProxyCache creates a proxy cache with the given TTL and size limit and
// starts its cleanup goroutine.
func NewProxyCache(defaultTTL time.Duration, maxSize int) *ProxyCache {
	pc := &ProxyCache{
		cache:      make(map[string]*proxyCacheEntry),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
		stop:       make(chan struct{}),
	}

	go pc.cleanupExpired()

	return pc
}

// Get retrieves a value from cache
func (pc *ProxyCache) Get(key string) (interface{}, bool) {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()

	entry, exists := pc.cache[key]
	if !exists || entry.isExpired() {
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value in cache with the default TTL
func (pc *ProxyCache) Set(key string, value interface{}) {
	pc.SetWithTTL(key, value, pc.defaultTTL)
}

// SetWithTTL stores a value in cache with a custom TTL
func (pc *ProxyCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	if len(pc.cache) >= pc.maxSize {
		pc.evictOldest()
	}

	pc.cache[key] = &proxyCacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// evictOldest removes the entry closest to expiry (simple FIFO eviction)
func (pc *ProxyCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range pc.cache {
		if oldestKey == "" || entry.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(pc.cache, oldestKey)
	}
}

// Delete removes a value from cache
func (pc *ProxyCache) Delete(key string) {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	delete(pc.cache, key)
}

// Clear removes all values from cache
func (pc *ProxyCache) Clear() {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	pc.cache = make(map[string]*proxyCacheEntry)
}

// Size returns the number of items in cache
func (pc *ProxyCache) Size() int {
	pc.mutex.RLock()
	defer pc.mutex.RUnlock()

	return len(pc.cache)
}

// Stop terminates the cleanup goroutine
func (pc *ProxyCache) Stop() {
	pc.stopOnce.Do(func() {
		close(pc.stop)
	})
}

// cleanupExpired removes expired entries from cache
func (pc *ProxyCache) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pc.mutex.Lock()
			for key, entry := range pc.cache {
				if entry.isExpired() {
					delete(pc.cache, key)
				}
			}
			pc.mutex.Unlock()
		case <-pc.stop:
			return
		}
	}
}
