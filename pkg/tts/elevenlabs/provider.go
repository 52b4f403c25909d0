// Package elevenlabs speaks through the ElevenLabs text-to-speech API.
package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"lingomap/pkg/config"
	"lingomap/pkg/dialect"
	"lingomap/pkg/model"
	"lingomap/pkg/request"
	"lingomap/pkg/tts"
)

// Name is the config and log identifier.
const Name = "elevenlabs"

// ElevenLabs accepts speed only within this band.
const (
	minSpeed = 0.7
	maxSpeed = 1.2
)

const outputFormat = "mp3_44100_128"

// Provider implements tts.Provider for ElevenLabs.
type Provider struct {
	key     string
	baseURL string
	voiceID string
	model   string
	client  *request.Client
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Speed           float64 `json:"speed"`
}

type synthRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	LanguageCode  string        `json:"language_code,omitempty"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// NewProvider creates a new ElevenLabs provider.
func NewProvider(cfg config.ElevenLabsConfig, client *request.Client) *Provider {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.elevenlabs.io"
	}
	return &Provider{
		key:     cfg.Key,
		baseURL: base,
		voiceID: cfg.VoiceID,
		model:   cfg.Model,
		client:  client,
	}
}

func (p *Provider) Name() string             { return Name }
func (p *Provider) Kind() model.ProviderKind { return model.ProviderCloudB }

// Available reports whether a key and a voice are configured.
func (p *Provider) Available(_ context.Context) bool {
	return p.key != "" && p.voiceID != ""
}

// Synthesize makes one text-to-speech call.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if !p.Available(ctx) {
		return nil, tts.ErrUnavailable
	}

	voice := p.voiceID
	if req.Voice != "" {
		voice = req.Voice
	}

	body, err := json.Marshal(p.buildRequest(req))
	if err != nil {
		return nil, tts.NewProviderError(Name, 0, fmt.Errorf("failed to encode request: %w", err))
	}

	u := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s", p.baseURL, url.PathEscape(voice), outputFormat)
	data, err := p.client.PostWithHeaders(ctx, u, body, map[string]string{
		"xi-api-key":   p.key,
		"Content-Type": "application/json",
		"Accept":       "audio/mpeg",
	})
	if err != nil {
		var se *request.StatusError
		if errors.As(err, &se) {
			return nil, tts.NewProviderError(Name, se.StatusCode, err)
		}
		return nil, tts.NewProviderError(Name, 0, err)
	}
	if len(data) == 0 {
		return nil, tts.NewProviderError(Name, 0, errors.New("empty audio body"))
	}

	return &tts.Audio{Data: data, Format: "mp3"}, nil
}

func (p *Provider) buildRequest(req tts.Request) synthRequest {
	sr := synthRequest{
		Text:    req.Text,
		ModelID: p.model,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Speed:           clampSpeed(req.Prosody.Rate),
		},
	}
	// Only the v2.5 models accept language enforcement.
	if strings.Contains(p.model, "v2_5") {
		sr.LanguageCode = dialect.BaseLanguage(req.Locale)
	}
	return sr
}

func clampSpeed(rate float64) float64 {
	if rate == 0 {
		return 1
	}
	if rate < minSpeed {
		return minSpeed
	}
	if rate > maxSpeed {
		return maxSpeed
	}
	return rate
}
