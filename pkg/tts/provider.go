// Package tts defines the contract shared by every speech backend.
package tts

import (
	"context"
	"errors"
	"fmt"

	"lingomap/pkg/model"
)

// ErrUnavailable is returned by Synthesize when the provider lacks
// credentials or a platform capability.
var ErrUnavailable = errors.New("provider unavailable")

// Request is a fully resolved synthesis request. Text has already been
// through dialect substitution.
type Request struct {
	Text    string
	Locale  string // BCP-47, never empty
	Voice   string // provider-specific voice hint, may be empty
	Prosody model.Prosody
}

// Audio is a synthesized clip.
type Audio struct {
	Data   []byte
	Format string // "mp3" or "wav"
}

// Provider is one speech backend in the fallback chain.
type Provider interface {
	// Name is a stable identifier used in config and logs, e.g. "google-tts".
	Name() string
	// Kind is the result category reported to callers.
	Kind() model.ProviderKind
	// Available reports whether the provider may be attempted at all.
	// It must be cheap and must not contact the network.
	Available(ctx context.Context) bool
	// Synthesize makes exactly one attempt.
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}

// ProviderError is a failed attempt. StatusCode is the HTTP status when the
// backend answered, else 0.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err for provider.
func NewProviderError(provider string, statusCode int, err error) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Err: err}
}

// IsProviderError reports whether err came from a provider attempt.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// StatusCode extracts the HTTP status from a provider error, or 0.
func StatusCode(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}
