package model

import (
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, ok := ParseLevel(l.String())
		if !ok || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, ok)
		}
	}
	if _, ok := ParseLevel("kingdom"); ok {
		t.Error("expected unknown level to fail")
	}
}

func TestFilter_Active(t *testing.T) {
	tests := []struct {
		name string
		f    Filter
		want int
	}{
		{"empty", Filter{}, 0},
		{"family", Filter{Family: "Japonic"}, 1},
		{"two levels", Filter{Family: "Indo-European", Branch: "Germanic"}, 2},
		{"gap ignores deeper", Filter{Family: "Indo-European", Group: "West Germanic"}, 1},
		{"no family", Filter{Branch: "Germanic"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.f.Active()); got != tt.want {
				t.Errorf("Active() len = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	rec := &LanguageRecord{
		ID:       "wuu",
		Taxonomy: Taxonomy{Family: "Sino-Tibetan", Branch: "Sinitic", Group: "Wu"},
		Dialects: []DialectVariant{{Name: "Shanghainese"}},
	}

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"no filter", Filter{}, true},
		{"family", Filter{Family: "Sino-Tibetan"}, true},
		{"wrong family", Filter{Family: "Japonic"}, false},
		{"deep", Filter{Family: "Sino-Tibetan", Branch: "Sinitic", Group: "Wu"}, true},
		{"missing level on record", Filter{Family: "Sino-Tibetan", Branch: "Sinitic", Group: "Wu", Subgroup: "Taihu"}, false},
		{"gap ignored", Filter{Family: "Sino-Tibetan", Group: "Min"}, true},
		{"dialect variant", Filter{Family: "Sino-Tibetan", Branch: "Sinitic", Group: "Wu", Subgroup: "x", Language: "y", Dialect: "Shanghainese"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	full := &LanguageRecord{
		Taxonomy: Taxonomy{Family: "A", Branch: "B", Group: "C", Subgroup: "D", Language: "E"},
		Dialects: []DialectVariant{{Name: "Kansai"}},
	}
	f := Filter{Family: "A", Branch: "B", Group: "C", Subgroup: "D", Language: "E", Dialect: "Kansai"}
	if !f.Matches(full) {
		t.Error("expected dialect variant name to satisfy dialect level")
	}
}

func TestLanguageRecord_Helpers(t *testing.T) {
	var r LanguageRecord
	if r.Speakers() != 0 {
		t.Error("missing speaker count should read as zero")
	}
	if r.PrimaryCountry() != "" {
		t.Error("expected empty primary country")
	}

	raw := `{"id":"jpn","displayName":"Japanese","taxonomy":{"family":"Japonic"},"countries":["JP","PW"],"totalSpeakers":125000000,"center":[138.25,36.2]}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatal(err)
	}
	if r.Speakers() != 125000000 {
		t.Errorf("Speakers() = %d", r.Speakers())
	}
	if !r.SpokenIn("pw") || r.SpokenIn("CN") {
		t.Error("SpokenIn mismatch")
	}
	if r.Center == nil || r.Center.Lat() != 36.2 {
		t.Errorf("center not decoded: %v", r.Center)
	}
}

func TestVariantKey(t *testing.T) {
	if got := VariantKey(DialectVariant{Name: "a", VoiceModelKey: "osaka-m"}, 3); got != "osaka-m" {
		t.Errorf("got %q", got)
	}
	if got := VariantKey(DialectVariant{Name: "a"}, 3); got != "variant-3" {
		t.Errorf("got %q", got)
	}
}

func TestIdentity_Key(t *testing.T) {
	if (Identity{LanguageID: "jpn"}).Key() != "jpn" {
		t.Error("bare identity key")
	}
	if (Identity{LanguageID: "jpn", DialectName: "Kansai"}).Key() != "jpn#Kansai" {
		t.Error("composite identity key")
	}
	if (Identity{LanguageID: " JPN", DialectName: "Kansai "}).Key() != "jpn#Kansai" {
		t.Error("key should ignore language case and padding")
	}
}

func TestVoiceRequest_Identity(t *testing.T) {
	req := VoiceRequest{LanguageID: "Wuu ", DialectName: "Shanghainese"}
	want := Identity{LanguageID: "wuu", DialectName: "Shanghainese"}
	if got := req.Identity(); got != want {
		t.Errorf("Identity() = %+v, want %+v", got, want)
	}
}
