// Package scene turns segments into ordered scene documents and edits them.
package scene

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
	"github.com/Sorranop01/vdo-content-sub000/internal/rate"
)

// FromSegments converts segmenter output into scenes with fresh identifiers
// and dense 1-based ordering. Timed segments carry their measured span as
// the duration; untimed ones keep the rate estimate.
func FromSegments(segments []model.Segment, prof model.CalibrationProfile) []model.Scene {
	if len(segments) == 0 {
		return nil
	}
	scenes := make([]model.Scene, 0, len(segments))
	for i, seg := range segments {
		s := model.Scene{
			SceneID:       uuid.NewString(),
			Order:         i + 1,
			StartTime:     seg.Start,
			EndTime:       seg.End,
			NarrationText: seg.Text,
			WordCount:     len(strings.Fields(seg.Text)),
			Oversized:     seg.Oversized,
		}
		if s.HasTiming() {
			s.EstimatedDuration = s.AudioDuration()
		} else {
			s.EstimatedDuration = seg.Estimated
			if s.EstimatedDuration == 0 {
				s.EstimatedDuration = rate.EstimateDuration(seg.Text, prof)
			}
		}
		scenes = append(scenes, s)
	}
	return scenes
}

// Renumber rewrites scene order to a dense 1-based sequence in place.
func Renumber(scenes []model.Scene) []model.Scene {
	for i := range scenes {
		scenes[i].Order = i + 1
	}
	return scenes
}
