package transcript

import "github.com/Sorranop01/vdo-content-sub000/internal/model"

// ElevenLabsResult mirrors the scribe transcription response shape.
type ElevenLabsResult struct {
	LanguageCode string           `json:"language_code"`
	Text         string           `json:"text"`
	Words        []ElevenLabsWord `json:"words"`
}

// ElevenLabsWord is one word or spacing entry from a scribe response.
type ElevenLabsWord struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"`
}

// Tokens converts word entries into the uniform token stream.
// Spacing entries carry no speech and are skipped.
func (r ElevenLabsResult) Tokens() []model.Token {
	tokens := make([]model.Token, 0, len(r.Words))
	for _, w := range r.Words {
		if w.Type == "spacing" {
			continue
		}
		tokens = append(tokens, model.Token{
			Text:  w.Text,
			Start: w.Start,
			End:   w.End,
		})
	}
	return Normalize(tokens)
}
