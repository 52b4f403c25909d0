package voice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAudioStore(t *testing.T) {
	s := NewAudioStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	h1 := s.Put([]byte{1}, "wav", "native")
	h2 := s.Put([]byte{2}, "mp3", "elevenlabs")
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, s.Len())

	c, ok := s.Get(h2)
	assert.True(t, ok)
	assert.Equal(t, "mp3", c.Format)
	assert.Equal(t, "elevenlabs", c.Provider)

	now = now.Add(2 * time.Minute)
	_, ok = s.Get(h1)
	assert.False(t, ok, "expired clips are not served")
	assert.Equal(t, 0, s.Len())

	h3 := s.Put([]byte{3}, "wav", "native")
	s.Delete(h3)
	_, ok = s.Get(h3)
	assert.False(t, ok)
}

func TestAudioStore_NoTTL(t *testing.T) {
	s := NewAudioStore(0)
	h := s.Put([]byte{1}, "wav", "native")
	s.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	_, ok := s.Get(h)
	assert.True(t, ok)
}
