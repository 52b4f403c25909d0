package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lingomap/pkg/model"
	"lingomap/pkg/tts"
)

func names(ps []tts.Provider) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func TestOrder(t *testing.T) {
	all := []tts.Provider{
		healthy("google-tts", model.ProviderCloudA),
		healthy("elevenlabs", model.ProviderCloudB),
		healthy("native", model.ProviderNative),
		healthy("sapi", model.ProviderNative),
	}

	tests := []struct {
		requested model.ProviderKind
		want      []string
	}{
		{"", []string{"google-tts", "elevenlabs", "native", "sapi"}},
		{model.ProviderNone, []string{"google-tts", "elevenlabs", "native", "sapi"}},
		{model.ProviderCloudB, []string{"elevenlabs", "google-tts", "native", "sapi"}},
		{model.ProviderNative, []string{"native", "sapi", "google-tts", "elevenlabs"}},
		{"sapi", []string{"sapi", "google-tts", "elevenlabs", "native"}},
		{"bogus", []string{"google-tts", "elevenlabs", "native", "sapi"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.requested), func(t *testing.T) {
			assert.Equal(t, tt.want, names(Order(all, tt.requested)))
		})
	}
	// input untouched
	assert.Equal(t, "google-tts", all[0].Name())
}

func TestSelect(t *testing.T) {
	all := []tts.Provider{
		healthy("google-tts", model.ProviderCloudA),
		healthy("elevenlabs", model.ProviderCloudB),
		healthy("native", model.ProviderNative),
	}
	sel, unknown := Select(all, []string{"native", "google-tts", "azure", "native"})
	assert.Equal(t, []string{"native", "google-tts"}, names(sel))
	assert.Equal(t, []string{"azure", "native"}, unknown)
}

func TestByKind(t *testing.T) {
	g := healthy("google-tts", model.ProviderCloudA)
	e := healthy("elevenlabs", model.ProviderCloudB)
	n := healthy("native", model.ProviderNative)
	s := healthy("sapi", model.ProviderNative)

	tests := []struct {
		name      string
		in        []tts.Provider
		want      []string
		wantMoved bool
	}{
		{"already ordered", []tts.Provider{g, e, n, s}, []string{"google-tts", "elevenlabs", "native", "sapi"}, false},
		{"native first", []tts.Provider{n, g}, []string{"google-tts", "native"}, true},
		{"same kind untouched", []tts.Provider{s, n}, []string{"sapi", "native"}, false},
		{"empty", nil, []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := ByKind(tt.in)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, tt.wantMoved, moved)
		})
	}
}
