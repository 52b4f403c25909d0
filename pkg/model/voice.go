package model

import (
	"strings"
	"time"
)

// ProviderKind identifies which backend produced a voice result.
type ProviderKind string

// Provider kinds in fallback order.
const (
	ProviderCloudA ProviderKind = "cloud-a" // Google Cloud Text-to-Speech
	ProviderCloudB ProviderKind = "cloud-b" // ElevenLabs
	ProviderNative ProviderKind = "native"  // platform speech engine
	ProviderNone   ProviderKind = "none"
)

// VoiceTuning holds optional caller overrides. Nil fields keep the dialect default.
type VoiceTuning struct {
	Rate   *float64 `json:"rate,omitempty"`
	Pitch  *float64 `json:"pitch,omitempty"`
	Volume *float64 `json:"volume,omitempty"`
}

// Prosody is a fully resolved set of speech parameters.
type Prosody struct {
	Rate   float64 `json:"rate"`   // 1.0 is normal speed
	Pitch  float64 `json:"pitch"`  // semitones relative to the voice default
	Volume float64 `json:"volume"` // 0.0 - 1.0
}

// DefaultProsody is normal speed, pitch and volume.
var DefaultProsody = Prosody{Rate: 1.0, Pitch: 0, Volume: 1.0}

// Identity keys all playback state for one language/dialect pair.
type Identity struct {
	LanguageID  string `json:"languageId"`
	DialectName string `json:"dialectName,omitempty"`
}

// Normalize trims both parts and lowercases the language id, matching how
// the catalogue resolves ids. Dialect names keep their case.
func (i Identity) Normalize() Identity {
	return Identity{
		LanguageID:  strings.ToLower(strings.TrimSpace(i.LanguageID)),
		DialectName: strings.TrimSpace(i.DialectName),
	}
}

// Key returns a flat string form usable as a map key.
func (i Identity) Key() string {
	i = i.Normalize()
	if i.DialectName == "" {
		return i.LanguageID
	}
	return i.LanguageID + "#" + i.DialectName
}

// VoiceRequest is one user-initiated playback request.
type VoiceRequest struct {
	Text              string       `json:"text"`
	LanguageID        string       `json:"languageId"`
	DialectName       string       `json:"dialectName,omitempty"`
	RequestedProvider ProviderKind `json:"requestedProvider,omitempty"`
	Tuning            *VoiceTuning `json:"voiceTuning,omitempty"`
}

// Identity returns the composite playback identity of the request.
func (r *VoiceRequest) Identity() Identity {
	return Identity{LanguageID: r.LanguageID, DialectName: r.DialectName}.Normalize()
}

// VoiceResult is the outcome of a voice request. Succeeded implies AudioHandle
// is set; otherwise ErrorMessage is.
type VoiceResult struct {
	Succeeded    bool          `json:"succeeded"`
	AudioHandle  string        `json:"audioHandle,omitempty"`
	ProviderUsed ProviderKind  `json:"providerUsed"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	Format       string        `json:"format,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Locale       string        `json:"locale,omitempty"`
	ResolvedText string        `json:"resolvedText,omitempty"`
	Prosody      *Prosody      `json:"prosody,omitempty"`
}
