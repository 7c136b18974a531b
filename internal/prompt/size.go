package prompt

import "strings"

// Size labels as shown on the form.
const (
	SizeShort  = "Curta (50 palavras)"
	SizeMedium = "Média (150 palavras)"
	SizeLong   = "Longa (300 palavras)"
)

type sizeTier struct {
	label   string
	alias   string
	ceiling int
}

var tiers = []sizeTier{
	{label: SizeShort, alias: "short", ceiling: 50},
	{label: SizeMedium, alias: "medium", ceiling: 150},
	{label: SizeLong, alias: "long", ceiling: 300},
}

// Sizes returns the size labels in tier order.
func Sizes() []string {
	out := make([]string, len(tiers))
	for i, t := range tiers {
		out[i] = t.label
	}
	return out
}

// NormalizeSize maps a label or alias to its canonical label.
// Anything unrecognized maps to the largest tier.
func NormalizeSize(label string) string {
	return tierFor(label).label
}

// WordCeiling returns the maximum word count for a size label.
func WordCeiling(label string) int {
	return tierFor(label).ceiling
}

func tierFor(label string) sizeTier {
	key := strings.TrimSpace(label)
	for _, t := range tiers {
		if key == t.label || strings.EqualFold(key, t.alias) {
			return t
		}
	}
	return tiers[len(tiers)-1]
}
