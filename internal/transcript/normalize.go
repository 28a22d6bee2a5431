package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// Supported backend shape names.
const (
	BackendWhisper    = "whisper"
	BackendDeepgram   = "deepgram"
	BackendElevenLabs = "elevenlabs"
	BackendSegments   = "segments"
)

// Normalize sorts tokens by start time, clamps inverted spans, rounds timing
// to centiseconds, and drops entries with no text. Empty input yields nil.
func Normalize(tokens []model.Token) []model.Token {
	out := make([]model.Token, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		tok.Start = round2(tok.Start)
		tok.End = round2(tok.End)
		if tok.Start < 0 {
			tok.Start = 0
		}
		if tok.End < tok.Start {
			tok.End = tok.Start
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// DetectAndNormalize sniffs the backend shape of raw transcript JSON and
// returns the normalized token stream plus the matched backend name.
// JSON that parses but matches no known shape yields an empty stream,
// pushing callers toward text-mode fallback.
func DetectAndNormalize(raw []byte) ([]model.Token, string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, "", nil
	}
	if trimmed[0] == '[' {
		var words []DeepgramWord
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, "", fmt.Errorf("failed to parse transcript: %w", err)
		}
		return DeepgramResult{Words: words}.Tokens(), BackendDeepgram, nil
	}

	var probe struct {
		Segments []json.RawMessage `json:"segments"`
		Words    []json.RawMessage `json:"words"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, "", fmt.Errorf("failed to parse transcript: %w", err)
	}

	if len(probe.Segments) > 0 {
		var whisper WhisperResult
		if err := json.Unmarshal(trimmed, &whisper); err != nil {
			return nil, "", fmt.Errorf("failed to parse transcript: %w", err)
		}
		if whisper.hasWords() {
			return whisper.Tokens(), BackendWhisper, nil
		}
		var segs SegmentsResult
		if err := json.Unmarshal(trimmed, &segs); err != nil {
			return nil, "", fmt.Errorf("failed to parse transcript: %w", err)
		}
		return segs.Tokens(), BackendSegments, nil
	}

	if len(probe.Words) > 0 {
		var wordProbe struct {
			Word *string `json:"word"`
			Text *string `json:"text"`
		}
		// Best-effort field sniff on the first entry.
		_ = json.Unmarshal(probe.Words[0], &wordProbe)
		switch {
		case wordProbe.Word != nil:
			var dg DeepgramResult
			if err := json.Unmarshal(trimmed, &dg); err != nil {
				return nil, "", fmt.Errorf("failed to parse transcript: %w", err)
			}
			return dg.Tokens(), BackendDeepgram, nil
		case wordProbe.Text != nil:
			var el ElevenLabsResult
			if err := json.Unmarshal(trimmed, &el); err != nil {
				return nil, "", fmt.Errorf("failed to parse transcript: %w", err)
			}
			return el.Tokens(), BackendElevenLabs, nil
		}
	}

	return nil, "", nil
}

// ParseBackend parses raw JSON as an explicitly named backend shape.
func ParseBackend(backend string, raw []byte) ([]model.Token, error) {
	trimmed := bytes.TrimSpace(raw)
	switch strings.ToLower(backend) {
	case BackendWhisper:
		var r WhisperResult
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, fmt.Errorf("failed to parse whisper transcript: %w", err)
		}
		return r.Tokens(), nil
	case BackendDeepgram:
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var words []DeepgramWord
			if err := json.Unmarshal(trimmed, &words); err != nil {
				return nil, fmt.Errorf("failed to parse deepgram transcript: %w", err)
			}
			return DeepgramResult{Words: words}.Tokens(), nil
		}
		var r DeepgramResult
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, fmt.Errorf("failed to parse deepgram transcript: %w", err)
		}
		return r.Tokens(), nil
	case BackendElevenLabs:
		var r ElevenLabsResult
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, fmt.Errorf("failed to parse elevenlabs transcript: %w", err)
		}
		return r.Tokens(), nil
	case BackendSegments:
		var r SegmentsResult
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, fmt.Errorf("failed to parse segment transcript: %w", err)
		}
		return r.Tokens(), nil
	}
	return nil, fmt.Errorf("unknown backend %q (supported: %s, %s, %s, %s)",
		backend, BackendWhisper, BackendDeepgram, BackendElevenLabs, BackendSegments)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
