package transcript

import (
	"strings"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// SegmentsResult holds segment-level timing with no word breakdown,
// the shape local faster-whisper wrappers commonly emit.
type SegmentsResult struct {
	Language string         `json:"language"`
	Duration float64        `json:"duration"`
	Segments []PlainSegment `json:"segments"`
}

// PlainSegment is a timed span of text.
type PlainSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Tokens synthesizes one token per segment, using the segment's own span.
func (r SegmentsResult) Tokens() []model.Token {
	tokens := make([]model.Token, 0, len(r.Segments))
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
	return Normalize(tokens)
}
