package transcript

import (
	"testing"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
)

func TestSynthesizeDeterministic(t *testing.T) {
	cfg := SynthConfig{Duration: 20, WordsPerSec: 2.5, BreakEvery: 8, Language: "th", Seed: 7}
	a := Synthesize(cfg)
	b := Synthesize(cfg)
	if len(a.Segments) == 0 {
		t.Fatalf("expected segments in synthetic transcript")
	}
	if len(a.Segments) != len(b.Segments) {
		t.Fatalf("expected identical segment counts, got %d and %d", len(a.Segments), len(b.Segments))
	}
	for i := range a.Segments {
		if a.Segments[i].Text != b.Segments[i].Text {
			t.Fatalf("segment %d differs between runs", i)
		}
	}
}

func TestSynthesizeTokenSpacing(t *testing.T) {
	r := Synthesize(SynthConfig{Duration: 10, WordsPerSec: 2.0, BreakEvery: 5, Language: "th", Seed: 1})
	tokens := r.Tokens()
	if len(tokens) != 20 {
		t.Fatalf("expected 20 tokens for 10s at 2/sec, got %d", len(tokens))
	}
	if tokens[0].Start != 0 {
		t.Fatalf("expected stream to start at 0, got %.2f", tokens[0].Start)
	}
	if tokens[len(tokens)-1].End != 10.0 {
		t.Fatalf("expected stream to end at 10.0, got %.2f", tokens[len(tokens)-1].End)
	}
	step := 0.5
	for i, tok := range tokens {
		if tok.End-tok.Start != step {
			t.Fatalf("token %d has span %.2f, expected %.2f", i, tok.End-tok.Start, step)
		}
	}
}

func TestSynthesizeBreakMarkers(t *testing.T) {
	p := lang.Lookup("th")
	r := Synthesize(SynthConfig{Duration: 8, WordsPerSec: 2.0, BreakEvery: 4, Language: "th", Seed: 3})
	tokens := r.Tokens()
	for i, tok := range tokens {
		if (i+1)%4 == 0 {
			if !p.IsNaturalBreak(tok.Text) {
				t.Fatalf("expected token %d (%q) to end on a break", i, tok.Text)
			}
		}
	}
}

func TestSynthesizeNoBreaks(t *testing.T) {
	p := lang.Lookup("th")
	r := Synthesize(SynthConfig{Duration: 8, WordsPerSec: 2.0, BreakEvery: 0, Language: "th", Seed: 3})
	for _, tok := range r.Tokens() {
		if p.IsNaturalBreak(tok.Text) {
			t.Fatalf("expected no break markers, found %q", tok.Text)
		}
	}
}
