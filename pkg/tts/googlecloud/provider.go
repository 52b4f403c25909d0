// Package googlecloud speaks through the Google Cloud Text-to-Speech REST API.
package googlecloud

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"lingomap/pkg/config"
	"lingomap/pkg/model"
	"lingomap/pkg/tts"
)

// Name is the config and log identifier.
const Name = "google-tts"

const (
	minGainDb = -96.0
	maxGainDb = 16.0
)

// Provider implements tts.Provider for Google Cloud TTS.
type Provider struct {
	key      string
	endpoint string
	encoding string
	opts     []option.ClientOption

	mu  sync.Mutex
	svc *texttospeech.Service
}

// NewProvider creates a provider. Extra options are appended after the key
// and endpoint, e.g. option.WithHTTPClient in tests.
func NewProvider(cfg config.GoogleTTSConfig, opts ...option.ClientOption) *Provider {
	enc := strings.ToUpper(cfg.AudioFormat)
	if enc != "LINEAR16" {
		enc = "MP3"
	}
	return &Provider{
		key:      cfg.Key,
		endpoint: cfg.Endpoint,
		encoding: enc,
		opts:     opts,
	}
}

func (p *Provider) Name() string             { return Name }
func (p *Provider) Kind() model.ProviderKind { return model.ProviderCloudA }

// Available reports whether an API key is configured.
func (p *Provider) Available(_ context.Context) bool {
	return p.key != ""
}

func (p *Provider) service(ctx context.Context) (*texttospeech.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.svc != nil {
		return p.svc, nil
	}

	opts := []option.ClientOption{option.WithAPIKey(p.key)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}
	opts = append(opts, p.opts...)

	// The service is reused across requests, so it must not inherit a
	// per-request deadline.
	svc, err := texttospeech.NewService(context.WithoutCancel(ctx), opts...)
	if err != nil {
		return nil, err
	}
	p.svc = svc
	return svc, nil
}

// Synthesize makes one synthesize call.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if !p.Available(ctx) {
		return nil, tts.ErrUnavailable
	}

	svc, err := p.service(ctx)
	if err != nil {
		return nil, tts.NewProviderError(Name, 0, fmt.Errorf("failed to create client: %w", err))
	}

	call := svc.Text.Synthesize(p.buildRequest(req)).Context(ctx)
	resp, err := call.Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return nil, tts.NewProviderError(Name, gerr.Code, errors.New(gerr.Message))
		}
		return nil, tts.NewProviderError(Name, 0, err)
	}

	data, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, tts.NewProviderError(Name, 0, fmt.Errorf("malformed audio content: %w", err))
	}
	if len(data) == 0 {
		return nil, tts.NewProviderError(Name, 0, errors.New("empty audio content"))
	}

	format := "mp3"
	if p.encoding == "LINEAR16" {
		format = "wav"
	}
	return &tts.Audio{Data: data, Format: format}, nil
}

func (p *Provider) buildRequest(req tts.Request) *texttospeech.SynthesizeSpeechRequest {
	voice := &texttospeech.VoiceSelectionParams{LanguageCode: req.Locale}
	// A voice name must share the request's language, else the API rejects it.
	if req.Voice != "" && strings.HasPrefix(strings.ToLower(req.Voice), strings.ToLower(req.Locale)) {
		voice.Name = req.Voice
	}

	return &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: req.Text},
		Voice: voice,
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: p.encoding,
			SpeakingRate:  req.Prosody.Rate,
			Pitch:         req.Prosody.Pitch,
			VolumeGainDb:  gainDb(req.Prosody.Volume),
			// zero values are dropped from the JSON body otherwise
			ForceSendFields: []string{"Pitch", "VolumeGainDb"},
		},
	}
}

// gainDb maps a 0..1 volume to the API's decibel gain.
func gainDb(v float64) float64 {
	if v <= 0 {
		return minGainDb
	}
	db := 20 * math.Log10(v)
	return math.Max(minGainDb, math.Min(maxGainDb, db))
}
