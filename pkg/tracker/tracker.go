// Package tracker keeps per-provider attempt, latency and cache counters.
package tracker

import (
	"sync"
	"sync/atomic"
	"time"
)

// Tracker tracks usage statistics per provider. It is safe for concurrent use.
type Tracker struct {
	mu    sync.RWMutex
	stats map[string]*counters
}

type counters struct {
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	success     atomic.Int64
	failures    atomic.Int64
	skipped     atomic.Int64
	latency     atomic.Int64 // summed nanoseconds of successful calls
	lastError   atomic.Pointer[string]
}

// ProviderStats is a point-in-time copy of one provider's counters.
type ProviderStats struct {
	CacheHits    int64         `json:"cache_hits"`
	CacheMisses  int64         `json:"cache_misses"`
	APISuccess   int64         `json:"api_success"`
	APIFailures  int64         `json:"api_failures"`
	Skipped      int64         `json:"skipped"` // not attempted: missing key or platform
	TotalLatency time.Duration `json:"-"`
	LastError    string        `json:"last_error,omitempty"`
}

// AvgLatency is the mean duration of successful calls.
func (s ProviderStats) AvgLatency() time.Duration {
	if s.APISuccess == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.APISuccess)
}

// HitRate is the cache hit share in percent.
func (s ProviderStats) HitRate() int64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return s.CacheHits * 100 / total
}

// New creates a new Tracker.
func New() *Tracker {
	return &Tracker{stats: make(map[string]*counters)}
}

func (t *Tracker) get(provider string) *counters {
	t.mu.RLock()
	c, ok := t.stats[provider]
	t.mu.RUnlock()
	if ok {
		return c
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok = t.stats[provider]; ok {
		return c
	}
	c = &counters{}
	t.stats[provider] = c
	return c
}

func (t *Tracker) TrackCacheHit(provider string)  { t.get(provider).cacheHits.Add(1) }
func (t *Tracker) TrackCacheMiss(provider string) { t.get(provider).cacheMisses.Add(1) }
func (t *Tracker) TrackSkip(provider string)      { t.get(provider).skipped.Add(1) }

// TrackAPISuccess counts a successful synthesis and its duration.
func (t *Tracker) TrackAPISuccess(provider string, took time.Duration) {
	c := t.get(provider)
	c.success.Add(1)
	c.latency.Add(int64(took))
}

// TrackAPIFailure counts a failed synthesis and remembers err.
func (t *Tracker) TrackAPIFailure(provider string, err error) {
	c := t.get(provider)
	c.failures.Add(1)
	if err != nil {
		msg := err.Error()
		c.lastError.Store(&msg)
	}
}

// Snapshot returns a copy of the current stats.
func (t *Tracker) Snapshot() map[string]ProviderStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]ProviderStats, len(t.stats))
	for k, c := range t.stats {
		s := ProviderStats{
			CacheHits:    c.cacheHits.Load(),
			CacheMisses:  c.cacheMisses.Load(),
			APISuccess:   c.success.Load(),
			APIFailures:  c.failures.Load(),
			Skipped:      c.skipped.Load(),
			TotalLatency: time.Duration(c.latency.Load()),
		}
		if msg := c.lastError.Load(); msg != nil {
			s.LastError = *msg
		}
		result[k] = s
	}
	return result
}

// Reset clears all counters.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = make(map[string]*counters)
}
