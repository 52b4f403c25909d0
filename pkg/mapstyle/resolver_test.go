package mapstyle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingomap/pkg/catalog"
	"lingomap/pkg/model"
)

func n(v int64) *int64 { return &v }

func newResolver(t *testing.T, recs ...model.LanguageRecord) *Resolver {
	t.Helper()
	cat, err := catalog.New(recs)
	require.NoError(t, err)
	return NewResolver(cat, DefaultOptions())
}

func TestDisplayDepth(t *testing.T) {
	tests := []struct {
		name string
		f    model.Filter
		want model.Level
	}{
		{"empty", model.Filter{}, model.LevelFamily},
		{"family", model.Filter{Family: "Indo-European"}, model.LevelFamily},
		{"branch", model.Filter{Family: "Indo-European", Branch: "Germanic"}, model.LevelBranch},
		{"gap ignored", model.Filter{Family: "Indo-European", Group: "West Germanic"}, model.LevelFamily},
		{"orphan deep level", model.Filter{Subgroup: "Taihu"}, model.LevelFamily},
		{"dialect", model.Filter{Family: "a", Branch: "b", Group: "c", Subgroup: "d", Language: "e", Dialect: "f"}, model.LevelDialect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayDepth(tt.f))
		})
	}
}

func TestRegion_PrimaryBySpeakers(t *testing.T) {
	r := newResolver(t,
		model.LanguageRecord{ID: "jpn", Taxonomy: model.Taxonomy{Family: "Japonic"}, TotalSpeakers: n(125000000), Countries: []string{"JP"}},
		model.LanguageRecord{ID: "cmn", Taxonomy: model.Taxonomy{Family: "Sino-Tibetan"}, TotalSpeakers: n(1200000000), Countries: []string{"JP"}},
	)

	rs := r.Region("JP", model.Filter{})
	assert.Equal(t, StatusStyled, rs.Status)
	assert.Equal(t, "cmn", rs.Primary)
	assert.Equal(t, "Sino-Tibetan", rs.ColorKey)
	assert.Equal(t, Color("Sino-Tibetan"), rs.FillColor)
	assert.Equal(t, 0.7, rs.FillOpacity)
	assert.Equal(t, []string{"jpn", "cmn"}, rs.Languages)
}

func TestRegion_TieKeepsInputOrder(t *testing.T) {
	r := newResolver(t,
		model.LanguageRecord{ID: "zzz", Taxonomy: model.Taxonomy{Family: "Uralic"}, Countries: []string{"XA"}},
		model.LanguageRecord{ID: "aaa", Taxonomy: model.Taxonomy{Family: "Turkic"}, Countries: []string{"XA"}},
		model.LanguageRecord{ID: "bbb", Taxonomy: model.Taxonomy{Family: "Koreanic"}, TotalSpeakers: n(0), Countries: []string{"XA"}},
	)
	for i := 0; i < 5; i++ {
		assert.Equal(t, "zzz", r.Region("XA", model.Filter{}).Primary)
	}
}

func TestRegion_NoDataAndExcluded(t *testing.T) {
	r := newResolver(t,
		model.LanguageRecord{ID: "deu", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic"}, Countries: []string{"DE"}},
	)
	opts := DefaultOptions()

	nd := r.Region("ZZ", model.Filter{})
	assert.Equal(t, StatusNoData, nd.Status)
	assert.Empty(t, nd.ColorKey)
	assert.Equal(t, opts.NoDataColor, nd.FillColor)
	assert.Equal(t, opts.MutedOpacity, nd.FillOpacity)

	assert.Equal(t, StatusNoData, r.Region("", model.Filter{}).Status)

	ex := r.Region("de", model.Filter{Family: "Sino-Tibetan"})
	assert.Equal(t, StatusExcluded, ex.Status)
	assert.Empty(t, ex.ColorKey)
	assert.Equal(t, opts.ExcludedColor, ex.FillColor)
	assert.NotEqual(t, nd.FillColor, ex.FillColor)
}

func TestRegion_EmptyDataset(t *testing.T) {
	empty := newResolver(t)
	nilSrc := NewResolver(nil, DefaultOptions())

	// codes in the static table stay unstyled too
	for _, code := range []string{"US", "IS", "NO", "AQ"} {
		for name, r := range map[string]*Resolver{"empty": empty, "nil": nilSrc} {
			rs := r.Region(code, model.Filter{})
			assert.Equal(t, StatusNoData, rs.Status, "%s %s", name, code)
			assert.False(t, rs.Fallback, "%s %s", name, code)
			assert.Empty(t, rs.Primary, "%s %s", name, code)
		}
	}
	assert.Empty(t, nilSrc.Legend(model.Filter{}).Keys)
}

func TestRegion_FallbackTable(t *testing.T) {
	r := newResolver(t,
		model.LanguageRecord{ID: "deu", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic"}, Countries: []string{"DE"}},
	)

	rs := r.Region("IS", model.Filter{})
	assert.Equal(t, StatusStyled, rs.Status)
	assert.True(t, rs.Fallback)
	assert.Equal(t, "isl", rs.Primary)
	assert.Equal(t, "Indo-European", rs.ColorKey)

	rs = r.Region("AQ", model.Filter{})
	assert.Equal(t, KeyUnclassified, rs.ColorKey)
}

func TestRegion_DepthFallsBackUpward(t *testing.T) {
	r := newResolver(t,
		model.LanguageRecord{ID: "xge", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic"}, Countries: []string{"XG"}},
		model.LanguageRecord{ID: "xfa", Taxonomy: model.Taxonomy{Family: "Koreanic"}, Countries: []string{"XK"}},
	)
	f := model.Filter{Family: "Indo-European", Branch: "Germanic"}

	rs := r.RegionAtDepth("XG", f, model.LevelGroup)
	assert.Equal(t, "Germanic", rs.ColorKey)

	// family-only record resolves at any depth
	for _, l := range model.Levels {
		assert.Equal(t, "Koreanic", r.RegionAtDepth("XK", model.Filter{}, l).ColorKey)
	}
}

func TestColorKey_DialectVariant(t *testing.T) {
	rec := &model.LanguageRecord{
		ID:       "jpn",
		Taxonomy: model.Taxonomy{Family: "Japonic", Branch: "Japanese", Language: "Japanese"},
		Dialects: []model.DialectVariant{{Name: "Osaka"}},
	}
	f := model.Filter{Family: "Japonic", Branch: "Japanese", Group: "x", Subgroup: "y", Language: "Japanese", Dialect: "Osaka"}
	assert.Equal(t, "Osaka", ColorKey(rec, model.LevelDialect, f))
	assert.Equal(t, "Japanese", ColorKey(rec, model.LevelDialect, model.Filter{}))
	assert.Equal(t, KeyUnclassified, ColorKey(&model.LanguageRecord{}, model.LevelFamily, model.Filter{}))
}

func TestColor_Stable(t *testing.T) {
	assert.Equal(t, "#e6194b", Color("Indo-European"))

	a := Color("Taihu")
	for i := 0; i < 10; i++ {
		assert.Equal(t, a, Color("Taihu"))
	}
	assert.Contains(t, fallbackPalette, a)
	assert.Equal(t, Color("Taihu"), Color("  Taihu "))
}

func TestRegion_Embedded(t *testing.T) {
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	r := NewResolver(cat, DefaultOptions())

	rs := r.Region("IN", model.Filter{})
	assert.Equal(t, "hin", rs.Primary)
	assert.Equal(t, "Indo-European", rs.ColorKey)

	rs = r.Region("IN", model.Filter{Family: "Dravidian"})
	assert.Equal(t, "tam", rs.Primary)
}
