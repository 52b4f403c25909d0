package mapstyle

import (
	"hash/fnv"
	"strings"
)

// familyColors are hand-assigned colors for major language families.
var familyColors = map[string]string{
	"Indo-European":    "#e6194b",
	"Sino-Tibetan":     "#3cb44b",
	"Afro-Asiatic":     "#ffb000",
	"Niger-Congo":      "#4363d8",
	"Austronesian":     "#f58231",
	"Dravidian":        "#911eb4",
	"Turkic":           "#42d4f4",
	"Uralic":           "#f032e6",
	"Japonic":          "#bfef45",
	"Koreanic":         "#fabed4",
	"Austroasiatic":    "#469990",
	"Kra-Dai":          "#dcbeff",
	"Quechuan":         "#9a6324",
	"Na-Dene":          "#800000",
	"Eskimo-Aleut":     "#aaffc3",
	"Mongolic":         "#808000",
	"Kartvelian":       "#ffd8b1",
	"Language isolate": "#000075",
}

// fallbackPalette colors every other key by hash.
var fallbackPalette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c", "#98df8a",
	"#d62728", "#ff9896", "#9467bd", "#c5b0d5", "#8c564b", "#c49c94",
	"#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7", "#bcbd22", "#dbdb8d",
	"#17becf", "#9edae5", "#393b79", "#5254a3", "#6b6ecf", "#9c9ede",
	"#637939", "#8ca252", "#b5cf6b", "#cedb9c", "#8c6d31", "#bd9e39",
	"#e7ba52", "#e7cb94", "#843c39", "#ad494a", "#d6616b", "#e7969c",
}

// Color returns the fill color for a color key. The result depends on the
// key string alone.
func Color(key string) string {
	if c, ok := familyColors[key]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(key)))
	return fallbackPalette[h.Sum32()%uint32(len(fallbackPalette))]
}
