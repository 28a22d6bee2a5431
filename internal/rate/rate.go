// Package rate estimates spoken duration from text length.
package rate

import (
	"math"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// EstimateDuration returns the expected narration time in seconds for text
// spoken at the profile's calibrated rate, rounded to a tenth of a second.
func EstimateDuration(text string, prof model.CalibrationProfile) float64 {
	p := lang.Lookup(prof.Language)
	return EstimateWithProfile(text, p, prof)
}

// EstimateWithProfile estimates with an already-resolved language profile.
func EstimateWithProfile(text string, p lang.Profile, prof model.CalibrationProfile) float64 {
	measure := p.Measure(text)
	if measure == 0 {
		return 0
	}
	r := p.Rate(prof)
	if r <= 0 {
		return 0
	}
	return math.Round(float64(measure)/r*10) / 10
}
