// Package transcript parses transcription backend output into a uniform token stream.
package transcript

import (
	"strings"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// WhisperResult mirrors the verbose JSON emitted by Whisper-style backends.
type WhisperResult struct {
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Text     string           `json:"text"`
	Segments []WhisperSegment `json:"segments"`
	Words    []WhisperWord    `json:"words"`
}

// WhisperSegment is one transcribed span, optionally with word timing.
type WhisperSegment struct {
	ID    int           `json:"id"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []WhisperWord `json:"words"`
}

// WhisperWord is a word-level timestamp entry.
type WhisperWord struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

func (r WhisperResult) hasWords() bool {
	if len(r.Words) > 0 {
		return true
	}
	for _, seg := range r.Segments {
		if len(seg.Words) > 0 {
			return true
		}
	}
	return false
}

// Tokens flattens the result into the uniform token stream, preferring
// word-level timing and synthesizing one token per segment without it.
func (r WhisperResult) Tokens() []model.Token {
	var tokens []model.Token
	for _, seg := range r.Segments {
		for _, w := range seg.Words {
			tokens = append(tokens, whisperToken(w))
		}
	}
	if len(tokens) == 0 {
		for _, w := range r.Words {
			tokens = append(tokens, whisperToken(w))
		}
	}
	if len(tokens) == 0 {
		for _, seg := range r.Segments {
			if strings.TrimSpace(seg.Text) == "" {
				continue
			}
			tokens = append(tokens, model.Token{
				Text:  seg.Text,
				Start: seg.Start,
				End:   seg.End,
			})
		}
	}
	return Normalize(tokens)
}

func whisperToken(w WhisperWord) model.Token {
	return model.Token{
		Text:       w.Word,
		Start:      w.Start,
		End:        w.End,
		Confidence: w.Probability,
	}
}
