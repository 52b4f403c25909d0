package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lingomap/pkg/model"
)

func ptr(f float64) *float64 { return &f }

func TestResolveText(t *testing.T) {
	r := New("en-US")

	tests := []struct {
		name    string
		lang    string
		dialect string
		in      string
		want    string
	}{
		{"shanghainese", "wuu", "Shanghainese", "你好，今天天气很好", "侬好，今朝天气蛮好"},
		{"no double substitution", "wuu", "Shanghainese", "谢谢", "谢谢侬"},
		{"sichuanese longest first", "cmn", "Sichuanese", "怎么样？这里很好", "啷个？这搭巴适"},
		{"japanese readings", "jpn", "Osaka", "今日は大阪", "きょうはおおさか"},
		{"no rules passes through", "eng", "British", "Hello there", "Hello there"},
		{"unknown language", "xyz", "", "你好", "你好"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveText(tt.lang, tt.dialect, tt.in))
		})
	}
}

func TestSubstitutions_Ordered(t *testing.T) {
	r := New("en-US")
	subs := r.Substitutions("cmn", "Sichuanese")
	if assert.NotEmpty(t, subs) {
		assert.Equal(t, "怎么样", subs[0].From)
	}
	for i := 1; i < len(subs); i++ {
		assert.GreaterOrEqual(t, len([]rune(subs[i-1].From)), len([]rune(subs[i].From)))
	}
	assert.Nil(t, r.Substitutions("eng", ""))
}

func TestResolveLocale(t *testing.T) {
	r := New("en-US")

	tests := []struct {
		lang, dialect, want string
	}{
		{"eng", "British", "en-GB"},
		{"eng", "", "en-US"},
		{"eng", "Scouse", "en-US"},
		{"yue", "Cantonese", "yue-HK"},
		{"wuu", "Shanghainese", "cmn-CN"},
		{"jpn", "Osaka", "ja-JP"},
		{"cmn", "Taiwanese Mandarin", "cmn-TW"},
		{"qqq", "", "en-US"},
		{"", "", "en-US"},
	}
	for _, tt := range tests {
		got := r.ResolveLocale(tt.lang, tt.dialect)
		assert.Equal(t, tt.want, got, "%s/%s", tt.lang, tt.dialect)
		assert.Equal(t, got, r.ResolveLocale(tt.lang, tt.dialect), "must be deterministic")
		assert.NotEmpty(t, got)
	}

	assert.Equal(t, "ja-JP", New("ja-JP").ResolveLocale("qqq", ""))
	assert.Equal(t, "en-US", New("not a locale!").ResolveLocale("qqq", ""))
}

func TestResolveVoice(t *testing.T) {
	r := New("en-US")
	assert.Equal(t, "ja-JP-Neural2-C", r.ResolveVoice("jpn", "Osaka", model.ProviderCloudA))
	assert.Equal(t, "ja-JP-Neural2-B", r.ResolveVoice("jpn", "", model.ProviderCloudA))
	assert.Equal(t, "", r.ResolveVoice("fin", "", model.ProviderCloudA))
	assert.Equal(t, "", r.ResolveVoice("jpn", "Osaka", model.ProviderNative))
}

func TestResolveProsody(t *testing.T) {
	r := New("en-US")

	p := r.ResolveProsody("wuu", "Shanghainese", nil)
	assert.Equal(t, 0.95, p.Rate)
	assert.Equal(t, 0.2, p.Pitch)
	assert.Equal(t, 1.0, p.Volume)

	// override wins field by field
	p = r.ResolveProsody("wuu", "Shanghainese", &model.VoiceTuning{Pitch: ptr(-2)})
	assert.Equal(t, 0.95, p.Rate)
	assert.Equal(t, -2.0, p.Pitch)

	p = r.ResolveProsody("eng", "", &model.VoiceTuning{Rate: ptr(9), Volume: ptr(0.4)})
	assert.Equal(t, MaxRate, p.Rate)
	assert.Equal(t, 0.0, p.Pitch)
	assert.Equal(t, 0.4, p.Volume)

	assert.Equal(t, model.DefaultProsody, r.ResolveProsody("xyz", "", nil))
}

func TestBaseLanguage(t *testing.T) {
	assert.Equal(t, "zh", BaseLanguage("cmn-CN"))
	assert.Equal(t, "ja", BaseLanguage("ja-JP"))
	assert.Equal(t, "en", BaseLanguage("en-GB"))
	assert.Equal(t, "", BaseLanguage("!!"))
}
