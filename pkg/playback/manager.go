// Package playback tracks per-identity voice sample state: at most one
// request owns an identity, and late results from replaced or stopped
// requests are dropped.
package playback

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"lingomap/pkg/model"
)

// Status is the playback phase of one identity.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusError   Status = "error"
)

// State is the observable state of one identity.
type State struct {
	Identity    model.Identity     `json:"identity"`
	Status      Status             `json:"status"`
	Generation  uint64             `json:"generation"`
	AudioHandle string             `json:"audioHandle,omitempty"`
	Provider    model.ProviderKind `json:"provider,omitempty"`
	LastError   string             `json:"lastError,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// IsPlaying and IsLoading mirror the UI flags.
func (s State) IsPlaying() bool { return s.Status == StatusPlaying }
func (s State) IsLoading() bool { return s.Status == StatusLoading }

// Ticket identifies one request's ownership of an identity.
type Ticket struct {
	Identity   model.Identity
	Generation uint64
}

type entry struct {
	state  State
	cancel context.CancelFunc
}

// Manager owns playback state for all identities.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	gen     uint64
	subs    map[int]chan State
	nextSub int
	now     func() time.Time
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		entries: make(map[string]*entry),
		subs:    make(map[int]chan State),
		now:     time.Now,
	}
}

// Begin claims id for a new request. Any completed playback for id is
// stopped and any in-flight request is cancelled; its result will be
// discarded. The returned context is cancelled when the ticket is replaced
// or stopped.
func (m *Manager) Begin(parent context.Context, id model.Identity) (Ticket, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	id = id.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(id)
	if e.cancel != nil {
		e.cancel()
	}
	if e.state.Status == StatusPlaying {
		slog.Debug("Replacing playback", "identity", id.Key())
	}
	m.gen++
	e.cancel = cancel
	e.state = State{
		Identity:   id,
		Status:     StatusLoading,
		Generation: m.gen,
		UpdatedAt:  m.now(),
	}
	m.publishLocked(e.state)
	return Ticket{Identity: id, Generation: e.state.Generation}, ctx
}

// Complete applies res if t still owns its identity. It reports whether
// the result was applied.
func (m *Manager) Complete(t Ticket, res model.VoiceResult) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[t.Identity.Key()]
	if !ok || e.state.Generation != t.Generation || e.state.Status != StatusLoading {
		slog.Debug("Discarding stale voice result", "identity", t.Identity.Key(), "generation", t.Generation)
		return false
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	e.state.UpdatedAt = m.now()
	if res.Succeeded {
		e.state.Status = StatusPlaying
		e.state.AudioHandle = res.AudioHandle
		e.state.Provider = res.ProviderUsed
		e.state.LastError = ""
	} else {
		e.state.Status = StatusError
		e.state.AudioHandle = ""
		e.state.Provider = model.ProviderNone
		e.state.LastError = res.ErrorMessage
	}
	m.publishLocked(e.state)
	return true
}

// Fail records a caller error for t, if t is still current.
func (m *Manager) Fail(t Ticket, err error) bool {
	return m.Complete(t, model.VoiceResult{ProviderUsed: model.ProviderNone, ErrorMessage: err.Error()})
}

// Stop halts playback of id and abandons any in-flight request. It is
// synchronous: when Stop returns, id is idle and no earlier ticket can
// change it.
func (m *Manager) Stop(id model.Identity) State {
	id = id.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(id)
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	m.gen++
	e.state = State{
		Identity:   id,
		Status:     StatusIdle,
		Generation: m.gen,
		UpdatedAt:  m.now(),
	}
	m.publishLocked(e.state)
	return e.state
}

// StopAll stops every active identity.
func (m *Manager) StopAll() {
	m.mu.Lock()
	ids := make([]model.Identity, 0, len(m.entries))
	for _, e := range m.entries {
		if e.state.Status == StatusLoading || e.state.Status == StatusPlaying {
			ids = append(ids, e.state.Identity)
		}
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Stop(id)
	}
}

// Finished marks playback of the given generation as ended. Reports from
// older generations are ignored.
func (m *Manager) Finished(id model.Identity, generation uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id.Key()]
	if !ok || e.state.Generation != generation || e.state.Status != StatusPlaying {
		return false
	}
	e.state.Status = StatusIdle
	e.state.UpdatedAt = m.now()
	m.publishLocked(e.state)
	return true
}

// State returns the state of id. Unknown identities are idle.
func (m *Manager) State(id model.Identity) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id.Key()]; ok {
		return e.state
	}
	return State{Identity: id.Normalize(), Status: StatusIdle}
}

// Snapshot returns all known states ordered by identity.
func (m *Manager) Snapshot() []State {
	m.mu.Lock()
	out := make([]State, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.state)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Identity.Key() < out[j].Identity.Key()
	})
	return out
}

// Subscribe streams state changes. Slow subscribers miss updates rather
// than block the manager. Call the returned func to unsubscribe.
func (m *Manager) Subscribe(buffer int) (<-chan State, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan State, buffer)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
			close(ch)
		})
	}
}

// publishLocked must run under m.mu so subscribers see updates in the order
// they were applied. Sends never block.
func (m *Manager) publishLocked(st State) {
	for _, ch := range m.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

func (m *Manager) entryLocked(id model.Identity) *entry {
	key := id.Key()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{state: State{Identity: id, Status: StatusIdle}}
		m.entries[key] = e
	}
	return e
}
