package transcript

import (
	"testing"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

func TestNormalizeSortsAndClamps(t *testing.T) {
	tokens := Normalize([]model.Token{
		{Text: "b", Start: 2.0, End: 1.5},
		{Text: "a", Start: 0.5, End: 1.0},
		{Text: "", Start: 0.0, End: 0.2},
	})
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Text != "a" || tokens[1].Text != "b" {
		t.Fatalf("expected tokens sorted by start, got %+v", tokens)
	}
	if tokens[1].End != tokens[1].Start {
		t.Fatalf("expected inverted span clamped, got start=%.2f end=%.2f", tokens[1].Start, tokens[1].End)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := Normalize([]model.Token{}); got != nil {
		t.Fatalf("expected nil for empty slice, got %v", got)
	}
}

func TestWhisperPrefersNestedWords(t *testing.T) {
	r := WhisperResult{
		Segments: []WhisperSegment{
			{
				Start: 0, End: 2, Text: "hello world",
				Words: []WhisperWord{
					{Word: "hello", Start: 0, End: 1, Probability: 0.95},
					{Word: " world", Start: 1, End: 2, Probability: 0.9},
				},
			},
		},
	}
	tokens := r.Tokens()
	if len(tokens) != 2 {
		t.Fatalf("expected 2 word tokens, got %d", len(tokens))
	}
	if tokens[0].Text != "hello" || tokens[0].Confidence != 0.95 {
		t.Fatalf("unexpected first token: %+v", tokens[0])
	}
}

func TestWhisperFallsBackToTopLevelWords(t *testing.T) {
	r := WhisperResult{
		Segments: []WhisperSegment{{Start: 0, End: 2, Text: "hello world"}},
		Words: []WhisperWord{
			{Word: "hello", Start: 0, End: 1},
			{Word: " world", Start: 1, End: 2},
		},
	}
	tokens := r.Tokens()
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens from top-level words, got %d", len(tokens))
	}
}

func TestWhisperSynthesizesSegmentTokens(t *testing.T) {
	r := WhisperResult{
		Segments: []WhisperSegment{
			{Start: 0, End: 3.5, Text: "first segment"},
			{Start: 3.5, End: 6.0, Text: "second segment"},
			{Start: 6.0, End: 6.2, Text: "  "},
		},
	}
	tokens := r.Tokens()
	if len(tokens) != 2 {
		t.Fatalf("expected one token per non-blank segment, got %d", len(tokens))
	}
	if tokens[0].Start != 0 || tokens[0].End != 3.5 {
		t.Fatalf("expected segment span preserved, got %+v", tokens[0])
	}
}

func TestDeepgramPrefersPunctuatedWord(t *testing.T) {
	r := DeepgramResult{Words: []DeepgramWord{
		{Word: "done", PunctuatedWord: "done.", Start: 0, End: 0.5, Confidence: 0.8},
		{Word: "next", Start: 0.5, End: 1.0},
	}}
	tokens := r.Tokens()
	if tokens[0].Text != "done." {
		t.Fatalf("expected punctuated form, got %q", tokens[0].Text)
	}
	if tokens[1].Text != "next" {
		t.Fatalf("expected raw word fallback, got %q", tokens[1].Text)
	}
}

func TestElevenLabsSkipsSpacing(t *testing.T) {
	r := ElevenLabsResult{Words: []ElevenLabsWord{
		{Text: "hello", Start: 0, End: 0.4, Type: "word"},
		{Text: " ", Start: 0.4, End: 0.45, Type: "spacing"},
		{Text: "there", Start: 0.45, End: 0.9, Type: "word"},
	}}
	tokens := r.Tokens()
	if len(tokens) != 2 {
		t.Fatalf("expected spacing entries skipped, got %d tokens", len(tokens))
	}
}

func TestDetectWhisper(t *testing.T) {
	raw := []byte(`{"language":"th","segments":[{"start":0,"end":1,"text":"a","words":[{"word":"a","start":0,"end":1}]}]}`)
	tokens, backend, err := DetectAndNormalize(raw)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if backend != BackendWhisper {
		t.Fatalf("expected whisper, got %q", backend)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
}

func TestDetectSegmentsOnly(t *testing.T) {
	raw := []byte(`{"language":"th","duration":5,"segments":[{"start":0,"end":5,"text":"whole"}]}`)
	tokens, backend, err := DetectAndNormalize(raw)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if backend != BackendSegments {
		t.Fatalf("expected segments, got %q", backend)
	}
	if len(tokens) != 1 || tokens[0].End != 5 {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestDetectDeepgramArray(t *testing.T) {
	raw := []byte(`[{"word":"hi","start":0,"end":0.3,"confidence":0.9}]`)
	tokens, backend, err := DetectAndNormalize(raw)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if backend != BackendDeepgram {
		t.Fatalf("expected deepgram, got %q", backend)
	}
	if len(tokens) != 1 || tokens[0].Confidence != 0.9 {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
}

func TestDetectElevenLabs(t *testing.T) {
	raw := []byte(`{"language_code":"en","words":[{"text":"hi","start":0,"end":0.3,"type":"word"}]}`)
	tokens, backend, err := DetectAndNormalize(raw)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if backend != BackendElevenLabs {
		t.Fatalf("expected elevenlabs, got %q", backend)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
}

func TestDetectUnknownShapeYieldsEmptyStream(t *testing.T) {
	tokens, backend, err := DetectAndNormalize([]byte(`{"foo":"bar"}`))
	if err != nil {
		t.Fatalf("expected no error for unknown shape, got %v", err)
	}
	if backend != "" || tokens != nil {
		t.Fatalf("expected empty result, got %q %v", backend, tokens)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	tokens, backend, err := DetectAndNormalize(nil)
	if err != nil || tokens != nil || backend != "" {
		t.Fatalf("expected empty result for empty input, got %v %q %v", tokens, backend, err)
	}
}

func TestDetectInvalidJSON(t *testing.T) {
	if _, _, err := DetectAndNormalize([]byte("{not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestParseBackendUnknownName(t *testing.T) {
	if _, err := ParseBackend("rev", []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown backend name")
	}
}
