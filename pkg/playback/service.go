package playback

import (
	"context"

	"lingomap/pkg/model"
)

// Speaker produces voice results. Validate reports caller errors without
// contacting any provider.
type Speaker interface {
	Validate(req model.VoiceRequest) error
	Speak(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error)
}

// Service runs voice requests under the manager's ownership rules.
type Service struct {
	mgr     *Manager
	speaker Speaker
}

// NewService creates a Service.
func NewService(mgr *Manager, sp Speaker) *Service {
	return &Service{mgr: mgr, speaker: sp}
}

// Manager returns the underlying state manager.
func (s *Service) Manager() *Manager {
	return s.mgr
}

// Play claims the request's identity and runs it. applied is false when the
// request was replaced or stopped before finishing; the result must then not
// be played. A rejected request leaves the identity's state untouched.
func (s *Service) Play(ctx context.Context, req model.VoiceRequest) (res model.VoiceResult, t Ticket, applied bool, err error) {
	if err := s.speaker.Validate(req); err != nil {
		return model.VoiceResult{}, Ticket{}, false, err
	}
	t, rctx := s.mgr.Begin(ctx, req.Identity())
	res, err = s.speaker.Speak(rctx, req)
	if err != nil {
		s.mgr.Fail(t, err)
		return res, t, false, err
	}
	applied = s.mgr.Complete(t, res)
	return res, t, applied, nil
}
