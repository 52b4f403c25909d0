package maintenance

import (
	"context"
	"log/slog"
	"time"

	"lingomap/pkg/db"
)

// LastPruneKey stores the time of the last successful cache prune.
const LastPruneKey = "audio_cache_last_prune"

// Run prunes audio cache entries older than ttl. A prune already done within
// the last ttl/4 is skipped. It blocks until completion.
func Run(ctx context.Context, d *db.DB, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	slog.Info("Starting database maintenance...")

	if last, ok := d.GetState(ctx, LastPruneKey); ok {
		if t, err := time.Parse(time.RFC3339, last); err == nil && time.Since(t) < ttl/4 {
			slog.Debug("Cache prune skipped, recently done", "last", last)
			return nil
		}
	}

	n, err := d.PruneCache(ttl)
	if err != nil {
		slog.Error("Cache pruning failed", "error", err)
		return nil
	}
	slog.Info("Cache pruning completed", "removed", n)

	if err := d.SetState(ctx, LastPruneKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		slog.Warn("Failed to record prune time", "error", err)
	}
	return nil
}
