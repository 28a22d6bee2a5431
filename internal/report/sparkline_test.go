package report

import "testing"

func TestMovingAverageSmoothsWindow(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	got := MovingAverage(values, 2)
	want := []float64{2, 3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestMovingAverageWindowOneCopies(t *testing.T) {
	values := []float64{1, 2, 3}
	got := MovingAverage(values, 1)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected copy of input, got %v", got)
	}
	got[0] = 99
	if values[0] != 1 {
		t.Fatalf("expected input untouched, got %v", values)
	}
}

func TestSparklineShape(t *testing.T) {
	got := Sparkline([]float64{0, 5, 10})
	if len(got) != 3 {
		t.Fatalf("expected 3 chars, got %q", got)
	}
	if got[0] != sparkChars[0] {
		t.Fatalf("expected lowest char first, got %q", got)
	}
	if got[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected highest char last, got %q", got)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	got := Sparkline([]float64{7, 7, 7})
	if got != "+++" {
		t.Fatalf("expected flat midline, got %q", got)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}
