package shared

import (
	"sync"
	"sync/atomic"
	"time"
)

// RefreshMetrics tracks the health of the refresh loop and the cache slot.
// All counters are atomic so jobs, handlers and background refreshes can
// update them without coordination.
type RefreshMetrics struct {
	RefreshTicks     int64
	RefreshFailures  int64
	CacheHits        int64
	CacheMisses      int64
	JoinsTracked     int64
	JoinTrackErrors  int64
	lastRefreshMutex sync.RWMutex
	lastRefreshAt    time.Time
}

// NewRefreshMetrics creates a zeroed metrics tracker
func NewRefreshMetrics() *RefreshMetrics {
	return &RefreshMetrics{}
}

// RecordTick records one periodic refresh tick and whether it succeeded
func (m *RefreshMetrics) RecordTick(ok bool) {
	atomic.AddInt64(&m.RefreshTicks, 1)
	if ok {
		m.lastRefreshMutex.Lock()
		m.lastRefreshAt = time.Now()
		m.lastRefreshMutex.Unlock()
	} else {
		atomic.AddInt64(&m.RefreshFailures, 1)
	}
}

// RecordCacheHit records a fresh snapshot served without a network call
func (m *RefreshMetrics) RecordCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// RecordCacheMiss records an absent, stale or malformed snapshot
func (m *RefreshMetrics) RecordCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// RecordJoinTracked records one best-effort join-tracking attempt
func (m *RefreshMetrics) RecordJoinTracked(ok bool) {
	atomic.AddInt64(&m.JoinsTracked, 1)
	if !ok {
		atomic.AddInt64(&m.JoinTrackErrors, 1)
	}
}

// LastRefreshAt returns the time of the last successful refresh, zero if none
func (m *RefreshMetrics) LastRefreshAt() time.Time {
	m.lastRefreshMutex.RLock()
	defer m.lastRefreshMutex.RUnlock()
	return m.lastRefreshAt
}

// Snapshot returns the current counter values for the metrics endpoint
func (m *RefreshMetrics) Snapshot() map[string]interface{} {
	snap := map[string]interface{}{
		"refresh_ticks":     atomic.LoadInt64(&m.RefreshTicks),
		"refresh_failures":  atomic.LoadInt64(&m.RefreshFailures),
		"cache_hits":        atomic.LoadInt64(&m.CacheHits),
		"cache_misses":      atomic.LoadInt64(&m.CacheMisses),
		"joins_tracked":     atomic.LoadInt64(&m.JoinsTracked),
		"join_track_errors": atomic.LoadInt64(&m.JoinTrackErrors),
	}
	if last := m.LastRefreshAt(); !last.IsZero() {
		snap["last_refresh_at"] = last.Unix()
	}
	return snap
}
