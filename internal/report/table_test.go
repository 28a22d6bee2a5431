package report

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Kind", "Count"}
	rows := [][]string{
		{"natural", "12"},
		{"forced", "3"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Kind    Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "natural    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "forced      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableHandlesThaiWidths(t *testing.T) {
	headers := []string{"Narration", "Duration"}
	rows := [][]string{
		{"สวัสดีครับผม", "7.2s"},
		{"ไปกันเลย", "6.0s"},
	}

	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	want := runewidth.StringWidth(lines[0])
	for i, line := range lines[1:] {
		if got := runewidth.StringWidth(line); got != want {
			t.Fatalf("line %d has display width %d, expected %d", i+1, got, want)
		}
	}
}

func TestFormatTableEmptyInput(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}
