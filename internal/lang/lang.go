// Package lang holds per-language counting rules and break-point data.
package lang

import (
	"strings"
	"unicode"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// CountMode selects how text length maps to speaking time.
type CountMode int

const (
	// CountWords measures text in whitespace-separated words.
	CountWords CountMode = iota
	// CountChars measures text in non-whitespace characters.
	CountChars
)

// Profile bundles counting mode, default rates, and break markers for one language.
type Profile struct {
	Code        string
	Mode        CountMode
	CharsPerSec float64
	WordsPerSec float64

	// Clamp range for the calibrated rate in the profile's counting mode.
	MinRate float64
	MaxRate float64

	// BreakParticles close a clause when a token ends with one.
	BreakParticles []string
	// ClauseEnders split an over-long sentence after the marker.
	ClauseEnders []string
	// Conjunctions split an over-long sentence before the marker.
	Conjunctions []string

	// WordSeparator joins token texts that carry no spacing of their own.
	WordSeparator string
}

// punctBreaks are cut points regardless of language.
const punctBreaks = ",.!?…"

var thai = Profile{
	Code:           "th",
	Mode:           CountChars,
	CharsPerSec:    10.0,
	WordsPerSec:    2.5,
	MinRate:        6.0,
	MaxRate:        18.0,
	BreakParticles: []string{"ครับ", "ค่ะ", "นะ", "เลย", "ด้วย", "แล้ว"},
	ClauseEnders:   []string{"ครับ", "ค่ะ", "นะคะ", "นะครับ"},
	Conjunctions:   []string{"แต่", "แล้ว", "และ", "หรือ", "เพราะ", "ถ้า", "จึง", "ดังนั้น", "โดย", "ซึ่ง"},
	WordSeparator:  "",
}

var english = Profile{
	Code:          "en",
	Mode:          CountWords,
	CharsPerSec:   10.0,
	WordsPerSec:   2.5,
	MinRate:       1.5,
	MaxRate:       5.0,
	WordSeparator: " ",
}

// Lookup resolves a language tag to its profile. Unknown tags fall back to
// word counting with English defaults.
func Lookup(tag string) Profile {
	cleaned := strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(cleaned, "-_"); i > 0 {
		cleaned = cleaned[:i]
	}
	switch cleaned {
	case "th", "tha", "thai":
		return thai
	case "en", "eng", "english", "":
		return english
	}
	p := english
	p.Code = cleaned
	return p
}

// Measure returns the text length in the profile's counting unit.
func (p Profile) Measure(text string) int {
	if p.Mode == CountChars {
		count := 0
		for _, r := range text {
			if unicode.IsSpace(r) {
				continue
			}
			count++
		}
		return count
	}
	return len(strings.Fields(text))
}

// Rate picks the calibrated rate for the profile's counting mode,
// falling back to the built-in default when the field is unset.
func (p Profile) Rate(prof model.CalibrationProfile) float64 {
	if p.Mode == CountChars {
		if prof.CharsPerSec > 0 {
			return prof.CharsPerSec
		}
		return p.CharsPerSec
	}
	if prof.WordsPerSec > 0 {
		return prof.WordsPerSec
	}
	return p.WordsPerSec
}

// ClampRate bounds a measured rate to the profile's biological range.
func (p Profile) ClampRate(rate float64) float64 {
	if rate < p.MinRate {
		return p.MinRate
	}
	if rate > p.MaxRate {
		return p.MaxRate
	}
	return rate
}

// DefaultCalibration returns the uncalibrated profile for this language.
func (p Profile) DefaultCalibration() model.CalibrationProfile {
	return model.CalibrationProfile{
		CharsPerSec: p.CharsPerSec,
		WordsPerSec: p.WordsPerSec,
		Language:    p.Code,
	}
}

// IsNaturalBreak reports whether a token text ends on a clause boundary.
func (p Profile) IsNaturalBreak(text string) bool {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return false
	}
	for _, particle := range p.BreakParticles {
		if strings.HasSuffix(stripped, particle) {
			return true
		}
	}
	runes := []rune(stripped)
	return strings.ContainsRune(punctBreaks, runes[len(runes)-1])
}

// WithParticles returns a copy of the profile using the given break particles.
func (p Profile) WithParticles(particles []string) Profile {
	out := p
	out.BreakParticles = append([]string(nil), particles...)
	return out
}
