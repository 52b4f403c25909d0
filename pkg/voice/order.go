package voice

import (
	"sort"

	"lingomap/pkg/model"
	"lingomap/pkg/tts"
)

// Order returns providers with those matching requested moved to the front.
// requested may be a kind ("cloud-b") or a provider name ("elevenlabs").
// The remaining providers keep their configured order. An empty or unknown
// request returns the configured order.
func Order(providers []tts.Provider, requested model.ProviderKind) []tts.Provider {
	out := make([]tts.Provider, 0, len(providers))
	if requested == "" || requested == model.ProviderNone {
		return append(out, providers...)
	}

	var rest []tts.Provider
	for _, p := range providers {
		if p.Kind() == requested || p.Name() == string(requested) {
			out = append(out, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(out, rest...)
}

// Select picks providers by name in the given order. Unknown and duplicate
// names are returned separately so callers can report them.
func Select(all []tts.Provider, names []string) (selected []tts.Provider, unknown []string) {
	byName := make(map[string]tts.Provider, len(all))
	for _, p := range all {
		byName[p.Name()] = p
	}
	seen := make(map[string]bool)
	for _, n := range names {
		p, ok := byName[n]
		if !ok || seen[n] {
			unknown = append(unknown, n)
			continue
		}
		seen[n] = true
		selected = append(selected, p)
	}
	return selected, unknown
}

func kindRank(k model.ProviderKind) int {
	switch k {
	case model.ProviderCloudA:
		return 0
	case model.ProviderCloudB:
		return 1
	case model.ProviderNative:
		return 2
	default:
		return 3
	}
}

// ByKind returns providers sorted into the fallback order cloud-a, cloud-b,
// native. Providers of the same kind keep their relative order. moved
// reports whether the input broke that order.
func ByKind(providers []tts.Provider) (out []tts.Provider, moved bool) {
	out = append([]tts.Provider(nil), providers...)
	sort.SliceStable(out, func(i, j int) bool {
		return kindRank(out[i].Kind()) < kindRank(out[j].Kind())
	})
	for i := range out {
		if out[i] != providers[i] {
			return out, true
		}
	}
	return out, false
}
