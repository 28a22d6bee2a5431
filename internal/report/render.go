// Package report renders scenes, cut points, and calibration results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Sorranop01/vdo-content-sub000/internal/calibrate"
	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
	"github.com/Sorranop01/vdo-content-sub000/internal/scene"
	"github.com/Sorranop01/vdo-content-sub000/internal/store"
	"github.com/Sorranop01/vdo-content-sub000/internal/validate"
)

const scenePreviewWidth = 32

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	oversizedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// RenderScenes prints a scene table with duration flags.
func RenderScenes(w io.Writer, scenes []model.Scene, c model.Constraints) error {
	if len(scenes) == 0 {
		_, err := fmt.Fprintln(w, "No scenes found.")
		return err
	}
	headers := []string{"#", "Span", "Duration", "Words", "Flags", "Narration"}
	rows := make([][]string, 0, len(scenes))
	flagged := make([]bool, 0, len(scenes))
	for _, sc := range scenes {
		span := "-"
		if sc.HasTiming() {
			span = fmt.Sprintf("%.2f-%.2f", sc.StartTime, sc.EndTime)
		}
		kind, _ := classifyScene(sc, c)
		rows = append(rows, []string{
			fmt.Sprintf("%d", sc.Order),
			span,
			fmt.Sprintf("%.1fs", sc.Duration()),
			fmt.Sprintf("%d", sc.WordCount),
			string(kind),
			runewidth.Truncate(previewText(sc.NarrationText), scenePreviewWidth, "…"),
		})
		flagged = append(flagged, kind == ProblemOversized)
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true}
	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		switch {
		case i == 0:
			line = headerStyle.Render(line)
		case flagged[i-1]:
			line = oversizedStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderStats prints summary statistics for a scene list.
func RenderStats(w io.Writer, scenes []model.Scene) error {
	if len(scenes) == 0 {
		_, err := fmt.Fprintln(w, "No scenes found.")
		return err
	}
	st := scene.Stats(scenes)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scenes: %d\n", st.SceneCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total duration: %.1fs\n", st.TotalDuration); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg duration: %.1fs\n", st.AvgDuration); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Min duration: %.1fs\n", st.MinDuration); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Max duration: %.1fs\n", st.MaxDuration); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words: %d\n", st.TotalWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Characters: %d\n", st.TotalChars); err != nil {
		return err
	}
	oversized := fmt.Sprintf("Oversized: %d", st.OversizedCount)
	if st.OversizedCount > 0 {
		oversized = oversizedStyle.Render(oversized)
	}
	if _, err := fmt.Fprintln(w, oversized); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Durations: %s\n", Sparkline(sceneDurations(scenes))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCalibration prints the outcome of a calibration pass.
func RenderCalibration(w io.Writer, p lang.Profile, previous model.CalibrationProfile, hadPrevious bool, out calibrate.Outcome) error {
	if _, err := fmt.Fprintf(w, "Calibration (%s)\n", p.Code); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Samples: %d (trimmed %d per side)\n", out.SampleCount, out.TrimmedPerSide); err != nil {
		return err
	}
	unit := rateUnit(p)
	if hadPrevious {
		if _, err := fmt.Fprintf(w, "Rate: %.2f %s (was %.2f)\n", out.Rate, unit, p.Rate(previous)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Rate: %.2f %s\n", out.Rate, unit); err != nil {
			return err
		}
	}
	if out.Clamped {
		line := fmt.Sprintf("Raw rate %.2f fell outside %.1f-%.1f and was clamped.", out.RawRate, p.MinRate, p.MaxRate)
		if _, err := fmt.Fprintln(w, warnStyle.Render(line)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderDrift prints an audio sync verdict.
func RenderDrift(w io.Writer, rep validate.DriftReport) error {
	if _, err := fmt.Fprintln(w, "Audio sync"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Expected: %.2fs\n", rep.Expected); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Actual: %.2fs\n", rep.Actual); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Drift: %+.2fs (threshold %.2fs)\n", rep.Drift, rep.Threshold); err != nil {
		return err
	}
	verdict := okStyle.Render("Timing within threshold.")
	if !rep.OK {
		verdict = oversizedStyle.Render("Timing drift exceeds threshold.")
	}
	if _, err := fmt.Fprintln(w, verdict); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderDurationCurve plots scene durations against the duration ceiling.
func RenderDurationCurve(w io.Writer, scenes []model.Scene, c model.Constraints, window, totalWidth, height int, useColor bool) error {
	if len(scenes) == 0 {
		return nil
	}
	durations := sceneDurations(scenes)
	series := []Series{
		{Name: "Duration", Values: durations},
	}
	if window > 1 {
		series = append(series, Series{Name: "Smoothed", Values: MovingAverage(durations, window)})
	}
	if c.MaxDuration > 0 {
		series = append(series, Series{
			Name:   fmt.Sprintf("Ceiling %.0fs", c.MaxDuration),
			Values: constantSeries(c.MaxDuration, len(durations)),
		})
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Scene durations (s)", series, width, height, useColor)
}

// RenderProfiles prints stored calibration profiles.
func RenderProfiles(w io.Writer, profiles []store.StoredProfile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(w, "No calibration profiles stored.")
		return err
	}
	headers := []string{"Key", "Lang", "Rate", "Samples", "Calibrated"}
	rows := make([][]string, 0, len(profiles))
	for _, sp := range profiles {
		p := lang.Lookup(sp.Profile.Language)
		calibrated := "-"
		if !sp.Profile.CalibratedAt.IsZero() {
			calibrated = sp.Profile.CalibratedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			sp.Key,
			sp.Profile.Language,
			fmt.Sprintf("%.2f %s", p.Rate(sp.Profile), rateUnit(p)),
			fmt.Sprintf("%d", sp.Profile.SampleCount),
			calibrated,
		})
	}
	lines := formatTable(headers, rows, map[int]bool{2: true, 3: true})
	for i, line := range lines {
		if i == 0 {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRateHistory plots calibrated rates across stored runs.
func RenderRateHistory(w io.Writer, runs []model.CalibrationRun, p lang.Profile, totalWidth, height int, useColor bool) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No calibration runs found.")
		return err
	}
	rates := make([]float64, len(runs))
	for i, run := range runs {
		rates[i] = run.Rate
	}
	series := []Series{
		{Name: "Rate", Values: rates},
		{Name: fmt.Sprintf("Floor %.1f", p.MinRate), Values: constantSeries(p.MinRate, len(runs))},
		{Name: fmt.Sprintf("Ceiling %.1f", p.MaxRate), Values: constantSeries(p.MaxRate, len(runs))},
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, fmt.Sprintf("Calibrated rate (%s)", rateUnit(p)), series, width, height, useColor)
}

func rateUnit(p lang.Profile) string {
	if p.Mode == lang.CountWords {
		return "words/s"
	}
	return "chars/s"
}

func previewText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func sceneDurations(scenes []model.Scene) []float64 {
	durations := make([]float64, len(scenes))
	for i, sc := range scenes {
		durations[i] = sc.Duration()
	}
	return durations
}

func constantSeries(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
