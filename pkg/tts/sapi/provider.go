// Package sapi speaks through Windows SAPI5 via OLE automation.
package sapi

import (
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"lingomap/pkg/model"
	"lingomap/pkg/tts"
)

// Name is the config and log identifier.
const Name = "sapi"

const (
	ssfmCreateForWrite = 3
	svsfIsXML          = 8
)

// Voice is an installed SAPI voice token.
type Voice struct {
	ID   string
	Name string
}

// Provider implements tts.Provider using Windows SAPI5 via OLE.
type Provider struct {
	mu      sync.Mutex
	enabled bool
}

// NewProvider creates a new SAPI5 provider.
func NewProvider(enabled bool) *Provider {
	return &Provider{enabled: enabled}
}

func (p *Provider) Name() string             { return Name }
func (p *Provider) Kind() model.ProviderKind { return model.ProviderNative }

// Available is true on Windows only.
func (p *Provider) Available(_ context.Context) bool {
	return p.enabled && runtime.GOOS == "windows"
}

// Synthesize renders req to a temporary WAV file and returns its bytes.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) (*tts.Audio, error) {
	if !p.Available(ctx) {
		return nil, tts.ErrUnavailable
	}

	tmp, err := os.CreateTemp("", "lingomap-sapi-*.wav")
	if err != nil {
		return nil, tts.NewProviderError(Name, 0, err)
	}
	outPath := tmp.Name()
	tmp.Close()
	defer os.Remove(outPath)

	if err := p.speakToFile(req, outPath); err != nil {
		return nil, tts.NewProviderError(Name, 0, err)
	}
	if ctx.Err() != nil {
		return nil, tts.NewProviderError(Name, 0, ctx.Err())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, tts.NewProviderError(Name, 0, err)
	}
	return &tts.Audio{Data: data, Format: "wav"}, nil
}

func (p *Provider) speakToFile(req tts.Request, outPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// COM apartments are per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitialize(0); err == nil {
		defer ole.CoUninitialize()
	}

	voice, err := createDispatch("SAPI.SpVoice")
	if err != nil {
		return err
	}
	defer voice.Release()

	if req.Voice != "" {
		p.setVoice(voice, func(v Voice) bool { return v.ID == req.Voice })
	} else if lang := languageName(req.Locale); lang != "" {
		p.setVoice(voice, func(v Voice) bool { return strings.Contains(v.Name, lang) })
	}

	stream, err := createDispatch("SAPI.SpFileStream")
	if err != nil {
		return err
	}
	defer stream.Release()

	if _, err := oleutil.CallMethod(stream, "Open", outPath, ssfmCreateForWrite, false); err != nil {
		return fmt.Errorf("stream Open failed: %w", err)
	}
	defer func() {
		_, _ = oleutil.CallMethod(stream, "Close")
	}()

	if _, err := oleutil.PutPropertyRef(voice, "AudioOutputStream", stream); err != nil {
		return fmt.Errorf("failed to set AudioOutputStream: %w", err)
	}

	pr := req.Prosody
	if pr == (model.Prosody{}) {
		pr = model.DefaultProsody
	}
	_, _ = oleutil.PutProperty(voice, "Rate", Rate(pr.Rate))
	_, _ = oleutil.PutProperty(voice, "Volume", int32(math.Round(pr.Volume*100)))

	if _, err := oleutil.CallMethod(voice, "Speak", Markup(req.Text, pr.Pitch), svsfIsXML); err != nil {
		return fmt.Errorf("Speak failed: %w", err)
	}
	return nil
}

func createDispatch(progID string) (*ole.IDispatch, error) {
	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", progID, err)
	}
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return nil, fmt.Errorf("QueryInterface %s failed: %w", progID, err)
	}
	return disp, nil
}

// Rate maps a speed multiplier onto SAPI's -10..10 scale, where each
// 10 steps doubles or halves speed.
func Rate(mult float64) int32 {
	if mult <= 0 {
		return 0
	}
	r := math.Round(math.Log2(mult) * 10)
	return int32(math.Max(-10, math.Min(10, r)))
}

// Markup wraps text in SAPI XML with a relative pitch.
func Markup(text string, semitones float64) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(text))
	// SAPI pitch runs -10..10; two semitones per step.
	steps := int(math.Max(-10, math.Min(10, math.Round(semitones/2))))
	if steps == 0 {
		return b.String()
	}
	return fmt.Sprintf(`<pitch middle="%d">%s</pitch>`, steps, b.String())
}

// languageName returns the English display name of the locale's language,
// which SAPI voice descriptions carry, e.g. "Microsoft Haruka - Japanese".
func languageName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return display.English.Languages().Name(base)
}

// Voices lists installed SAPI voices.
func (p *Provider) Voices(ctx context.Context) ([]Voice, error) {
	if !p.Available(ctx) {
		return nil, tts.ErrUnavailable
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitialize(0); err == nil {
		defer ole.CoUninitialize()
	}

	voice, err := createDispatch("SAPI.SpVoice")
	if err != nil {
		return nil, err
	}
	defer voice.Release()

	var voices []Voice
	err = forEachToken(voice, func(item *ole.IDispatch) bool {
		if v, ok := tokenVoice(item); ok {
			voices = append(voices, v)
		}
		return false
	})
	return voices, err
}

// setVoice selects the first installed voice accepted by match.
func (p *Provider) setVoice(voice *ole.IDispatch, match func(Voice) bool) {
	_ = forEachToken(voice, func(item *ole.IDispatch) bool {
		v, ok := tokenVoice(item)
		if ok && match(v) {
			_, _ = oleutil.PutPropertyRef(voice, "Voice", item)
			return true
		}
		return false
	})
}

// forEachToken visits voice tokens until fn returns true.
func forEachToken(voice *ole.IDispatch, fn func(*ole.IDispatch) bool) error {
	tokensVar, err := oleutil.CallMethod(voice, "GetVoices")
	if err != nil {
		return fmt.Errorf("failed to get voices collection: %w", err)
	}
	tokens := tokensVar.ToIDispatch()
	if tokens == nil {
		return fmt.Errorf("voices collection is nil")
	}
	defer tokens.Release()

	countVar, err := oleutil.GetProperty(tokens, "Count")
	if err != nil {
		return fmt.Errorf("GetVoices Count failed: %w", err)
	}

	for i := 0; i < variantInt(countVar); i++ {
		itemVar, err := oleutil.CallMethod(tokens, "Item", i)
		if err != nil {
			continue
		}
		item := itemVar.ToIDispatch()
		if item == nil {
			continue
		}
		done := fn(item)
		item.Release()
		if done {
			return nil
		}
	}
	return nil
}

func tokenVoice(item *ole.IDispatch) (Voice, bool) {
	idVar, idErr := oleutil.CallMethod(item, "GetId")
	descVar, descErr := oleutil.CallMethod(item, "GetDescription", int32(0))
	if idErr != nil || descErr != nil || idVar == nil || descVar == nil {
		return Voice{}, false
	}
	return Voice{ID: idVar.ToString(), Name: descVar.ToString()}, true
}

func variantInt(v *ole.VARIANT) int {
	switch it := v.Value().(type) {
	case int32:
		return int(it)
	case int64:
		return int(it)
	case int:
		return it
	case uint32:
		return int(it)
	default:
		return int(v.Val)
	}
}
