// Package native drives a local espeak-ng compatible speech engine.
package native

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"lingomap/pkg/config"
	"lingomap/pkg/model"
	"lingomap/pkg/tts"
)

// Name is the config and log identifier.
const Name = "native"

const (
	baseWPM   = 175
	basePitch = 50
)

// espeak-ng voices that carry a region; everything else uses the bare language.
var regionalVoices = map[string]bool{
	"en-gb": true, "en-us": true, "en-029": true,
	"pt-br": true, "es-419": true, "fr-be": true, "fr-ch": true,
	"vi-vn-x-central": true,
}

// Provider implements tts.Provider by running espeak-ng.
type Provider struct {
	enabled bool
	binary  string

	once     sync.Once
	resolved string
}

// NewProvider creates a new native provider.
func NewProvider(cfg config.NativeConfig) *Provider {
	bin := cfg.Binary
	if bin == "" {
		bin = "espeak-ng"
	}
	return &Provider{enabled: cfg.Enabled, binary: bin}
}

func (p *Provider) Name() string             { return Name }
func (p *Provider) Kind() model.ProviderKind { return model.ProviderNative }

func (p *Provider) lookPath() string {
	p.once.Do(func() {
		if path, err := exec.LookPath(p.binary); err == nil {
			p.resolved = path
		}
	})
	return p.resolved
}

// Available reports whether the engine is enabled and installed.
func (p *Provider) Available(_ context.Context) bool {
	return p.enabled && p.lookPath() != ""
}

// Synthesize renders req to WAV on stdout.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if !p.Available(ctx) {
		return nil, tts.ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, p.lookPath(), Args(req)...)
	cmd.Stdin = strings.NewReader(req.Text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, tts.NewProviderError(Name, 0, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, tts.NewProviderError(Name, 0, fmt.Errorf("engine failed: %s", msg))
	}

	if stdout.Len() == 0 {
		return nil, tts.NewProviderError(Name, 0, errors.New("no audio output"))
	}
	return &tts.Audio{Data: stdout.Bytes(), Format: "wav"}, nil
}

// Args builds the espeak-ng command line for req. Text is fed on stdin.
func Args(req tts.Request) []string {
	pr := req.Prosody
	if pr == (model.Prosody{}) {
		pr = model.DefaultProsody
	}

	voice := req.Voice
	if voice == "" {
		voice = Voice(req.Locale)
	}

	// espeak-ng pitch is 0-99 around 50; semitones map at 2.5 per step.
	pitch := int(math.Round(basePitch + pr.Pitch*2.5))
	pitch = max(0, min(99, pitch))

	return []string{
		"--stdout",
		"--stdin",
		"-v", voice,
		"-s", strconv.Itoa(int(math.Round(baseWPM * pr.Rate))),
		"-p", strconv.Itoa(pitch),
		"-a", strconv.Itoa(int(math.Round(100 * pr.Volume))),
	}
}

// Voice maps a BCP-47 locale to an espeak-ng voice name.
func Voice(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	if l == "" {
		return "en"
	}
	if regionalVoices[l] {
		return l
	}
	base, _, _ := strings.Cut(l, "-")
	if base == "zh" {
		return "cmn"
	}
	return base
}
