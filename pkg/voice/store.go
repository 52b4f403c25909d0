package voice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clip is a stored synthesized clip.
type Clip struct {
	Data     []byte
	Format   string
	Provider string
	Created  time.Time
}

// AudioStore holds synthesized clips under opaque handles until they expire.
type AudioStore struct {
	mu    sync.Mutex
	clips map[string]Clip
	ttl   time.Duration
	now   func() time.Time
}

// NewAudioStore creates a store. A zero ttl keeps clips forever.
func NewAudioStore(ttl time.Duration) *AudioStore {
	return &AudioStore{
		clips: make(map[string]Clip),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores a clip and returns its handle.
func (s *AudioStore) Put(data []byte, format, provider string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	handle := uuid.NewString()
	s.clips[handle] = Clip{Data: data, Format: format, Provider: provider, Created: s.now()}
	return handle
}

// Get returns the clip for handle.
func (s *AudioStore) Get(handle string) (Clip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clips[handle]
	if !ok || s.expired(c) {
		return Clip{}, false
	}
	return c, true
}

// Delete drops a clip.
func (s *AudioStore) Delete(handle string) {
	s.mu.Lock()
	delete(s.clips, handle)
	s.mu.Unlock()
}

// Len returns the number of live clips.
func (s *AudioStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.clips)
}

func (s *AudioStore) expired(c Clip) bool {
	return s.ttl > 0 && s.now().Sub(c.Created) > s.ttl
}

func (s *AudioStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	for h, c := range s.clips {
		if s.expired(c) {
			delete(s.clips, h)
		}
	}
}
