package voice

import (
	"log/slog"

	"lingomap/pkg/config"
	"lingomap/pkg/request"
	"lingomap/pkg/tts"
	"lingomap/pkg/tts/elevenlabs"
	"lingomap/pkg/tts/googlecloud"
	"lingomap/pkg/tts/native"
	"lingomap/pkg/tts/sapi"
)

// BuildProviders creates every known provider from cfg and keeps those named
// in cfg.Order. The order may drop providers or rank providers of the same
// kind, but cloud-a always precedes cloud-b, which precedes native.
func BuildProviders(cfg config.VoiceConfig, client *request.Client) (selected []tts.Provider, unknown []string) {
	all := []tts.Provider{
		googlecloud.NewProvider(cfg.GoogleTTS),
		elevenlabs.NewProvider(cfg.ElevenLabs, client),
		native.NewProvider(cfg.Native),
		sapi.NewProvider(cfg.Native.Enabled),
	}
	selected, unknown = Select(all, cfg.Order)
	selected, moved := ByKind(selected)
	if moved {
		slog.Warn("Configured voice order breaks the cloud-a, cloud-b, native sequence; reordered",
			"configured", cfg.Order, "effective", Names(selected))
	}
	return selected, unknown
}

// Names returns the provider names in order.
func Names(providers []tts.Provider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.Name()
	}
	return out
}
