package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lingomap/pkg/tts"
)

// Sized is anything that reports how many items it holds.
type Sized interface {
	Len() int
}

// ErrNotLoaded is returned when a required component was never loaded.
var ErrNotLoaded = errors.New("not loaded")

// Catalog checks that the language catalogue loaded. An empty catalogue
// passes with a warning: the map then shows no data everywhere.
func Catalog(c Sized) Probe {
	return Probe{
		Name:     "Language Catalogue",
		Critical: true,
		Check: func(ctx context.Context) error {
			if c == nil {
				return ErrNotLoaded
			}
			if c.Len() == 0 {
				slog.Warn("Probe: Language catalogue is empty")
			}
			return nil
		},
	}
}

// Regions checks the optional region boundaries.
func Regions(codes func() []string) Probe {
	return Probe{
		Name: "Region Boundaries",
		Check: func(ctx context.Context) error {
			if codes == nil {
				return ErrNotLoaded
			}
			if len(codes()) == 0 {
				return errors.New("no regions with an ISO code")
			}
			return nil
		},
	}
}

// Providers returns one non-critical probe per speech provider. A provider
// that is not available is reported but never blocks startup.
func Providers(providers []tts.Provider) []Probe {
	out := make([]Probe, 0, len(providers))
	for _, p := range providers {
		p := p
		out = append(out, Probe{
			Name: fmt.Sprintf("Voice: %s", p.Name()),
			Check: func(ctx context.Context) error {
				if !p.Available(ctx) {
					return tts.ErrUnavailable
				}
				return nil
			},
		})
	}
	return out
}
