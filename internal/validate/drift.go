// Package validate checks assembled scene timing against real audio length.
package validate

import (
	"math"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// DefaultDriftThreshold is the allowed gap in seconds between the scene
// timeline and the measured audio before the report flags it.
const DefaultDriftThreshold = 1.0

// DriftReport compares the planned scene timeline with the real audio.
// Drift is signed: positive means the audio runs longer than the scenes.
type DriftReport struct {
	Expected  float64
	Actual    float64
	Drift     float64
	Threshold float64
	OK        bool
}

// Check compares scenes against the audio length using the default threshold.
func Check(scenes []model.Scene, audioSeconds float64) DriftReport {
	return CheckWithThreshold(scenes, audioSeconds, DefaultDriftThreshold)
}

// CheckWithThreshold sums each scene's real timing, falling back to its
// estimate when no timing exists, and compares the total with the audio
// length. A mismatch is reported, never an error.
func CheckWithThreshold(scenes []model.Scene, audioSeconds, threshold float64) DriftReport {
	if threshold <= 0 {
		threshold = DefaultDriftThreshold
	}
	var expected float64
	for _, scene := range scenes {
		if scene.HasTiming() {
			expected += scene.AudioDuration()
		} else {
			expected += scene.EstimatedDuration
		}
	}
	expected = round2(expected)
	drift := round2(audioSeconds - expected)
	return DriftReport{
		Expected:  expected,
		Actual:    round2(audioSeconds),
		Drift:     drift,
		Threshold: threshold,
		OK:        math.Abs(drift) <= threshold,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
