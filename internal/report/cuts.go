// Package report renders scenes, cut points, and calibration results for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// cutKindOrder fixes the display order for cut tallies.
var cutKindOrder = []model.CutKind{model.CutNatural, model.CutWindow, model.CutForced, model.CutMerged}

// CountCuts tallies cut records by kind.
func CountCuts(cuts []model.CutRecord) map[model.CutKind]int {
	counts := make(map[model.CutKind]int, len(cutKindOrder))
	for _, cut := range cuts {
		counts[cut.Kind]++
	}
	return counts
}

// TopBreakTexts returns the most frequent break tokens among the cuts.
func TopBreakTexts(cuts []model.CutRecord, n int) []string {
	if n <= 0 || len(cuts) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, cut := range cuts {
		if cut.BreakText == "" {
			continue
		}
		counts[cut.BreakText]++
	}
	type item struct {
		text  string
		total int
	}
	items := make([]item, 0, len(counts))
	for text, total := range counts {
		items = append(items, item{text: text, total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].text < items[j].text
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].text)
	}
	return out
}

// RenderCuts prints how the segmenter chose its cut points.
func RenderCuts(w io.Writer, cuts []model.CutRecord) error {
	if len(cuts) == 0 {
		_, err := fmt.Fprintln(w, "No cut points recorded.")
		return err
	}
	counts := CountCuts(cuts)
	if _, err := fmt.Fprintln(w, "Cut points"); err != nil {
		return err
	}
	headers := []string{"Kind", "Count"}
	rows := make([][]string, 0, len(cutKindOrder))
	for _, kind := range cutKindOrder {
		if counts[kind] == 0 {
			continue
		}
		rows = append(rows, []string{string(kind), fmt.Sprintf("%d", counts[kind])})
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if top := TopBreakTexts(cuts, 5); len(top) > 0 {
		if _, err := fmt.Fprintf(w, "Top breaks: %s\n", strings.Join(top, ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
