package api

import (
	"net/http"
	"runtime"

	"lingomap/pkg/tracker"
	"lingomap/pkg/voice"
)

// StatsHandler reports provider counters and process diagnostics.
type StatsHandler struct {
	tracker *tracker.Tracker
	store   *voice.AudioStore
	order   []string
}

// NewStatsHandler creates a new StatsHandler. order is the active provider order.
func NewStatsHandler(t *tracker.Tracker, store *voice.AudioStore, order []string) *StatsHandler {
	return &StatsHandler{tracker: t, store: store, order: order}
}

type ProviderStatsDTO struct {
	CacheHits    int64   `json:"cache_hits"`
	CacheMisses  int64   `json:"cache_misses"`
	APISuccess   int64   `json:"api_success"`
	APIFailures  int64   `json:"api_errors"`
	Skipped      int64   `json:"skipped"`
	HitRate      int64   `json:"hit_rate"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	LastError    string  `json:"last_error,omitempty"`
}

type Diagnostics struct {
	MemoryMB   uint64 `json:"memory_mb"`
	Goroutines int    `json:"goroutines"`
	AudioClips int    `json:"audio_clips"`
}

type StatsResponse struct {
	Diagnostics   Diagnostics                 `json:"diagnostics"`
	Providers     map[string]ProviderStatsDTO `json:"providers"`
	ProviderOrder []string                    `json:"provider_order"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := StatsResponse{
		Diagnostics: Diagnostics{
			MemoryMB:   bToMb(mem.Alloc),
			Goroutines: runtime.NumGoroutine(),
		},
		Providers:     make(map[string]ProviderStatsDTO),
		ProviderOrder: h.order,
	}
	if h.store != nil {
		resp.Diagnostics.AudioClips = h.store.Len()
	}

	for provider, stats := range h.tracker.Snapshot() {
		resp.Providers[provider] = ProviderStatsDTO{
			CacheHits:    stats.CacheHits,
			CacheMisses:  stats.CacheMisses,
			APISuccess:   stats.APISuccess,
			APIFailures:  stats.APIFailures,
			Skipped:      stats.Skipped,
			HitRate:      stats.HitRate(),
			AvgLatencyMS: float64(stats.AvgLatency().Microseconds()) / 1000,
			LastError:    stats.LastError,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
