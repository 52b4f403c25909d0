package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingomap/pkg/model"
)

func TestSearch(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	tests := []struct {
		name      string
		query     string
		wantFirst string
		contains  []string
		field     string
	}{
		{name: "exact id", query: "jpn", wantFirst: "jpn"},
		{name: "exact name case-insensitive", query: "SPANISH", wantFirst: "spa"},
		{name: "name prefix", query: "ger", wantFirst: "deu"},
		{name: "dialect name", query: "shanghai", wantFirst: "wuu", field: "Shanghainese"},
		{name: "family", query: "japonic", contains: []string{"jpn"}},
		{name: "branch matches many", query: "sinitic", contains: []string{"cmn", "wuu", "yue", "nan"}},
		{name: "region", query: "kansai", wantFirst: "jpn"},
		{name: "accent folding keeps unicode", query: "québécois", wantFirst: "fra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, 0)
			require.NotEmpty(t, got)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, got[0].Record.ID)
			}
			if tt.field != "" {
				assert.Equal(t, tt.field, got[0].Field)
			}
			var ids []string
			for _, m := range got {
				ids = append(ids, m.Record.ID)
			}
			for _, want := range tt.contains {
				assert.Contains(t, ids, want)
			}
		})
	}

	assert.Empty(t, c.Search("   ", 0))
	assert.Empty(t, c.Search("klingon", 0))
	assert.Len(t, c.Search("e", 3), 3)
}

func TestSearch_ExactBeforePrefix(t *testing.T) {
	c, err := New([]model.LanguageRecord{
		{ID: "aaa", DisplayName: "Korean Sign Language", Taxonomy: model.Taxonomy{Family: "Sign"}},
		{ID: "kor", DisplayName: "Korean", Taxonomy: model.Taxonomy{Family: "Koreanic"}},
	})
	require.NoError(t, err)

	got := c.Search("korean", 0)
	require.Len(t, got, 2)
	assert.Equal(t, "kor", got[0].Record.ID)
	assert.Equal(t, "aaa", got[1].Record.ID)
}

func TestSuggest(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	got := c.Suggest("sh", 0)
	assert.Contains(t, got, "Shanghainese")

	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}

	assert.Len(t, c.Suggest("s", 2), 2)
	assert.Nil(t, c.Suggest("", 5))
}

func TestFilterAndOptions(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	ie := c.Filter(model.Filter{Family: "Indo-European", Branch: "Germanic"})
	var ids []string
	for _, r := range ie {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"eng", "deu", "nld"}, ids)

	assert.Equal(t, []string{"West Germanic"}, c.FilterOptions(model.Filter{Family: "Indo-European", Branch: "Germanic"}, model.LevelGroup))
	assert.Contains(t, c.FilterOptions(model.Filter{}, model.LevelFamily), "Japonic")

	dialects := c.FilterOptions(model.Filter{Family: "Japonic", Branch: "Japanese"}, model.LevelDialect)
	assert.Contains(t, dialects, "Osaka")
	assert.Contains(t, dialects, "Kyoto")
}
