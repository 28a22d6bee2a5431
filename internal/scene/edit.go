package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
	"github.com/Sorranop01/vdo-content-sub000/internal/rate"
	"github.com/Sorranop01/vdo-content-sub000/internal/segment"
)

// Merge combines the scene at index with its successor. The merge is refused
// when the combined narration estimate exceeds the duration ceiling. Timing
// survives only when both scenes carry it.
func Merge(scenes []model.Scene, index int, prof model.CalibrationProfile, c model.Constraints) ([]model.Scene, error) {
	if index < 0 || index+1 >= len(scenes) {
		return nil, fmt.Errorf("no scene pair at position %d", index+1)
	}
	first := scenes[index]
	second := scenes[index+1]

	combined := strings.TrimSpace(first.NarrationText + " " + second.NarrationText)
	estimate := rate.EstimateDuration(combined, prof)
	if estimate > c.MaxDuration {
		return nil, fmt.Errorf("merged scene would run %.1fs, past the %.1fs limit", estimate, c.MaxDuration)
	}

	merged := model.Scene{
		SceneID:           uuid.NewString(),
		NarrationText:     combined,
		WordCount:         len(strings.Fields(combined)),
		EstimatedDuration: estimate,
	}
	if first.HasTiming() && second.HasTiming() {
		merged.StartTime = first.StartTime
		merged.EndTime = second.EndTime
		merged.EstimatedDuration = merged.AudioDuration()
		merged.Oversized = merged.AudioDuration() > c.MaxDuration
	}

	out := make([]model.Scene, 0, len(scenes)-1)
	out = append(out, scenes[:index]...)
	out = append(out, merged)
	out = append(out, scenes[index+2:]...)
	return Renumber(out), nil
}

// Split re-segments the scene at index by its narration text. Scenes under
// the ceiling are left alone. The replacement scenes carry no audio timing.
func Split(scenes []model.Scene, index int, p lang.Profile, prof model.CalibrationProfile, c model.Constraints) ([]model.Scene, error) {
	if index < 0 || index >= len(scenes) {
		return nil, fmt.Errorf("no scene at position %d", index+1)
	}
	target := scenes[index]
	if target.Duration() <= c.MaxDuration {
		return scenes, nil
	}

	pieces := segment.SplitText(target.NarrationText, p, prof, c)
	if len(pieces) <= 1 {
		return scenes, nil
	}
	replacements := FromSegments(pieces, prof)

	out := make([]model.Scene, 0, len(scenes)+len(replacements)-1)
	out = append(out, scenes[:index]...)
	out = append(out, replacements...)
	out = append(out, scenes[index+1:]...)
	return Renumber(out), nil
}

// Move lifts the scene at from and reinserts it at to, then renumbers.
func Move(scenes []model.Scene, from, to int) ([]model.Scene, error) {
	if from < 0 || from >= len(scenes) {
		return nil, fmt.Errorf("no scene at position %d", from+1)
	}
	if to < 0 || to >= len(scenes) {
		return nil, fmt.Errorf("no scene at position %d", to+1)
	}
	if from == to {
		return scenes, nil
	}

	out := make([]model.Scene, 0, len(scenes))
	out = append(out, scenes[:from]...)
	out = append(out, scenes[from+1:]...)

	moved := scenes[from]
	out = append(out[:to], append([]model.Scene{moved}, out[to:]...)...)
	return Renumber(out), nil
}
