package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"lingomap/pkg/db"
)

// Entry is a cached audio clip.
type Entry struct {
	Data   []byte
	Format string
}

// Cacher defines the audio caching interface.
type Cacher interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key, provider string, e Entry) error
}

// Key derives a cache key from everything that shapes a synthesized clip.
func Key(provider, locale, voice string, rate, pitch, volume float64, text string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%.3f\x00%.3f\x00%.3f\x00%s",
		strings.ToLower(provider), locale, voice, rate, pitch, volume, text)
	return hex.EncodeToString(h.Sum(nil))
}

// SQLiteCache implements Cacher using pkg/db.
type SQLiteCache struct {
	db *db.DB
}

// NewSQLiteCache creates a new cache.
func NewSQLiteCache(d *db.DB) *SQLiteCache {
	return &SQLiteCache{db: d}
}

func (c *SQLiteCache) Get(ctx context.Context, key string) (Entry, bool) {
	data, format, ok, err := c.db.GetAudio(ctx, key)
	if err != nil {
		slog.Warn("Audio cache read failed", "key", key, "error", err)
		return Entry{}, false
	}
	if !ok {
		return Entry{}, false
	}
	return Entry{Data: data, Format: format}, true
}

func (c *SQLiteCache) Set(ctx context.Context, key, provider string, e Entry) error {
	return c.db.PutAudio(ctx, key, provider, e.Format, e.Data)
}

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context, string) (Entry, bool)           { return Entry{}, false }
func (Nop) Set(context.Context, string, string, Entry) error { return nil }
