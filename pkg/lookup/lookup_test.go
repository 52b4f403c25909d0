package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Resolve(t *testing.T) {
	tbl := New("en-US").
		Exact("wuu", "Shanghainese", "wuu-CN").
		Alias("Kansai", "ja-JP").
		Language("cmn", "cmn-CN").
		Language("wuu", "cmn-CN")

	tests := []struct {
		name      string
		lang      string
		dialect   string
		want      string
		wantLayer Layer
	}{
		{"exact", "wuu", "Shanghainese", "wuu-CN", LayerExact},
		{"exact case-insensitive", "WUU", " shanghainese ", "wuu-CN", LayerExact},
		{"alias any language", "jpn", "Kansai", "ja-JP", LayerAlias},
		{"language fallback for unknown dialect", "wuu", "Suzhounese", "cmn-CN", LayerLanguage},
		{"language without dialect", "cmn", "", "cmn-CN", LayerLanguage},
		{"global default", "xyz", "nothing", "en-US", LayerDefault},
		{"empty input", "", "", "en-US", LayerDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, layer := tbl.Resolve(tt.lang, tt.dialect)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLayer, layer)

			// deterministic
			again, againLayer := tbl.Resolve(tt.lang, tt.dialect)
			assert.Equal(t, got, again)
			assert.Equal(t, layer, againLayer)
		})
	}
}

func TestAncestors(t *testing.T) {
	tests := []struct {
		levels []string
		want   string
		idx    int
	}{
		{[]string{"Indo-European", "Germanic", ""}, "Germanic", 1},
		{[]string{"Japonic", "", "", ""}, "Japonic", 0},
		{[]string{"A", "B", "C"}, "C", 2},
		{[]string{"", ""}, "", -1},
		{nil, "", -1},
	}
	for _, tt := range tests {
		got, idx := Ancestors(tt.levels...)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.idx, idx)
	}
}

func TestLayer_String(t *testing.T) {
	assert.Equal(t, "exact", LayerExact.String())
	assert.Equal(t, "default", LayerDefault.String())
}
