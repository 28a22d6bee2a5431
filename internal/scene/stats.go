package scene

import (
	"math"
	"unicode"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// Stats aggregates scene durations and text volume for reporting.
func Stats(scenes []model.Scene) model.ScriptStats {
	if len(scenes) == 0 {
		return model.ScriptStats{}
	}

	stats := model.ScriptStats{SceneCount: len(scenes)}
	minDur := math.Inf(1)
	maxDur := math.Inf(-1)
	for _, s := range scenes {
		d := s.Duration()
		stats.TotalDuration += d
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
		stats.TotalWords += s.WordCount
		stats.TotalChars += countChars(s.NarrationText)
		if s.Oversized {
			stats.OversizedCount++
		}
	}
	stats.TotalDuration = round1(stats.TotalDuration)
	stats.AvgDuration = round1(stats.TotalDuration / float64(len(scenes)))
	stats.MinDuration = minDur
	stats.MaxDuration = maxDur
	return stats
}

func countChars(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		count++
	}
	return count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
