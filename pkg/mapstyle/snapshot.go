package mapstyle

import (
	"sync"
	"sync/atomic"

	"lingomap/pkg/model"
)

// View is a computed map state for one filter.
type View struct {
	Version uint64        `json:"version"`
	Filter  model.Filter  `json:"filter"`
	Legend  Legend        `json:"legend"`
	Regions []RegionStyle `json:"regions"`
}

// Snapshotter recomputes map views as the filter changes. The latest
// filter always wins: a computation that finishes after a newer Update is
// thrown away.
type Snapshotter struct {
	res     *Resolver
	codes   func() []string
	version atomic.Uint64

	mu     sync.RWMutex
	filter model.Filter
	view   *View
}

// NewSnapshotter creates a Snapshotter. codes lists the regions to style.
func NewSnapshotter(res *Resolver, codes func() []string) *Snapshotter {
	return &Snapshotter{res: res, codes: codes}
}

// Update records f as the latest filter and returns its version.
func (s *Snapshotter) Update(f model.Filter) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return s.version.Add(1)
}

// Compute builds the view for version v. It returns false if a newer
// Update arrived before the work finished.
func (s *Snapshotter) Compute(v uint64) (*View, bool) {
	s.mu.RLock()
	f := s.filter
	current := s.version.Load()
	s.mu.RUnlock()
	if v != current {
		return nil, false
	}

	view := &View{Version: v, Filter: f, Legend: s.res.Legend(f)}
	if s.codes != nil {
		for _, c := range s.codes() {
			view.Regions = append(view.Regions, s.res.Region(c, f))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version.Load() != v {
		return nil, false
	}
	s.view = view
	return view, true
}

// Apply updates the filter and computes its view in one step.
func (s *Snapshotter) Apply(f model.Filter) (*View, bool) {
	return s.Compute(s.Update(f))
}

// Latest returns the newest completed view, or nil.
func (s *Snapshotter) Latest() *View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}
