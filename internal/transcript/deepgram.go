package transcript

import "github.com/Sorranop01/vdo-content-sub000/internal/model"

// DeepgramResult holds the flat word list emitted by Deepgram-style backends.
type DeepgramResult struct {
	Words []DeepgramWord `json:"words"`
}

// DeepgramWord is one word-level entry with optional punctuated form.
type DeepgramWord struct {
	Word           string  `json:"word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	PunctuatedWord string  `json:"punctuated_word"`
}

// Tokens converts the word list into the uniform token stream. The
// punctuated form is preferred because it preserves break punctuation.
func (r DeepgramResult) Tokens() []model.Token {
	tokens := make([]model.Token, 0, len(r.Words))
	for _, w := range r.Words {
		text := w.PunctuatedWord
		if text == "" {
			text = w.Word
		}
		tokens = append(tokens, model.Token{
			Text:       text,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
	}
	return Normalize(tokens)
}
