// Package audio decodes synthesized speech and plays it on the local speaker.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// Player plays in-memory audio through gopxl/beep. One clip plays at a time.
type Player struct {
	mu                 sync.RWMutex
	ctrl               *beep.Ctrl
	volume             float64
	isPaused           bool
	speakerInitialized bool
	currentSampleRate  beep.SampleRate
	streamer           *effects.Volume
	trackStreamer      beep.StreamSeekCloser
	trackFormat        beep.Format
	generation         uint64
}

// NewPlayer creates a Player at full volume.
func NewPlayer() *Player {
	return &Player{volume: 1.0}
}

// Play stops the current clip and starts data. onComplete runs when the clip
// ends on its own, never after Stop.
func (p *Player) Play(data []byte, onComplete func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	streamer, format, kind, err := Decode(data)
	if err != nil {
		return err
	}

	if err := p.ensureSpeakerInitialized(streamer); err != nil {
		return err
	}

	resampled := beep.Resample(3, format.SampleRate, p.currentSampleRate, streamer)

	volStreamer := &effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeToPower(p.volume),
		Silent:   p.volume <= 0.01,
	}

	p.streamer = volStreamer
	p.trackStreamer = streamer
	p.trackFormat = format
	p.generation++
	gen := p.generation

	p.ctrl = &beep.Ctrl{Streamer: volStreamer}
	p.isPaused = false

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// speaker goroutine must not block
		go func() {
			p.mu.Lock()
			if p.generation != gen {
				p.mu.Unlock()
				return
			}
			p.ctrl = nil
			p.isPaused = false
			p.mu.Unlock()

			if onComplete != nil {
				onComplete()
			}
		}()
	})))

	slog.Debug("Playing audio", "format", kind, "duration", format.SampleRate.D(streamer.Len()))
	return nil
}

// Pause pauses current playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		p.isPaused = true
	}
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil && p.isPaused {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.isPaused = false
	}
}

// Stop stops playback and rewinds. It is synchronous.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
}

func (p *Player) stopLocked() {
	// invalidate any pending completion callback
	p.generation++
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
		p.isPaused = false
	}
	if p.trackStreamer != nil {
		p.trackStreamer.Close()
		p.trackStreamer = nil
	}
	p.streamer = nil
}

func (p *Player) ensureSpeakerInitialized(streamer beep.StreamSeekCloser) error {
	const targetSampleRate = 48000
	if !p.speakerInitialized {
		err := speaker.Init(beep.SampleRate(targetSampleRate), beep.SampleRate(targetSampleRate).N(time.Second/10))
		if err != nil {
			streamer.Close()
			slog.Error("Failed to initialize speaker", "error", err)
			return err
		}
		p.speakerInitialized = true
		p.currentSampleRate = beep.SampleRate(targetSampleRate)
	}
	return nil
}

// IsPlaying returns true if audio is currently playing.
func (p *Player) IsPlaying() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ctrl != nil && !p.isPaused
}

// IsPaused returns true if playback is paused.
func (p *Player) IsPaused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isPaused
}

// SetVolume sets playback volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = ClampVolume(vol)

	if p.streamer != nil {
		speaker.Lock()
		p.streamer.Volume = volumeToPower(p.volume)
		p.streamer.Silent = p.volume <= 0.01
		speaker.Unlock()
	}
}

// Volume returns current volume level.
func (p *Player) Volume() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.trackStreamer == nil || p.trackFormat.SampleRate == 0 {
		return 0
	}
	return p.trackFormat.SampleRate.D(p.trackStreamer.Position())
}

// Duration returns the total duration of the current clip.
func (p *Player) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.trackStreamer == nil || p.trackFormat.SampleRate == 0 {
		return 0
	}
	return p.trackFormat.SampleRate.D(p.trackStreamer.Len())
}
