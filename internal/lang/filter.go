// Package lang provides particle list filtering helpers.
package lang

import "strings"

// FilterFunc returns true when a particle entry should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for particle lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "th":
		return filterThaiScript
	default:
		return filterSingleToken
	}
}

func filterThaiScript(particle string) bool {
	if particle == "" {
		return false
	}
	for _, r := range particle {
		if r < 0x0E00 || r > 0x0E7F {
			return false
		}
	}
	return true
}

func filterSingleToken(particle string) bool {
	if particle == "" {
		return false
	}
	return !strings.ContainsAny(particle, " \t")
}
