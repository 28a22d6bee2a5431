package transcript

import (
	"math/rand"
	"strings"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
)

// SynthConfig controls synthetic transcript generation.
type SynthConfig struct {
	Duration    float64
	WordsPerSec float64
	BreakEvery  int
	Language    string
	Seed        int64
}

var synthWordsEN = []string{
	"the", "story", "keeps", "moving", "along", "with", "steady",
	"narration", "over", "quiet", "scenes", "while", "voices", "carry",
	"every", "moment", "forward", "through", "light", "and", "shadow",
}

var synthWordsTH = []string{
	"เรื่อง", "ราว", "ของ", "เวลา", "ผู้คน", "ใน", "เมือง", "ความ",
	"หัวใจ", "เดินทาง", "แสง", "เสียง", "ภาพ", "จังหวะ", "ช่วง", "ตอน",
}

// Synthesize builds a deterministic fake transcript: evenly spaced tokens at
// a fixed speaking rate, with a break marker appended every BreakEvery-th
// token. The same seed always yields the same stream.
func Synthesize(cfg SynthConfig) WhisperResult {
	if cfg.Duration <= 0 {
		cfg.Duration = 30.0
	}
	if cfg.WordsPerSec <= 0 {
		cfg.WordsPerSec = 2.5
	}
	rnd := rand.New(rand.NewSource(cfg.Seed))
	p := lang.Lookup(cfg.Language)

	bank := synthWordsEN
	spaced := true
	if p.Code == "th" {
		bank = synthWordsTH
		spaced = false
	}

	step := 1.0 / cfg.WordsPerSec
	count := int(cfg.Duration * cfg.WordsPerSec)

	result := WhisperResult{Language: p.Code, Duration: cfg.Duration}
	var segWords []WhisperWord
	flush := func() {
		if len(segWords) == 0 {
			return
		}
		var b strings.Builder
		for _, w := range segWords {
			b.WriteString(w.Word)
		}
		result.Segments = append(result.Segments, WhisperSegment{
			ID:    len(result.Segments),
			Start: segWords[0].Start,
			End:   segWords[len(segWords)-1].End,
			Text:  strings.TrimSpace(b.String()),
			Words: segWords,
		})
		segWords = nil
	}

	for i := 0; i < count; i++ {
		text := bank[rnd.Intn(len(bank))]
		isBreak := cfg.BreakEvery > 0 && (i+1)%cfg.BreakEvery == 0
		if isBreak {
			text = appendBreak(rnd, text, p)
		}
		if spaced && len(segWords) > 0 {
			text = " " + text
		}
		segWords = append(segWords, WhisperWord{
			Word:        text,
			Start:       round2(float64(i) * step),
			End:         round2(float64(i+1) * step),
			Probability: 0.9,
		})
		if isBreak {
			flush()
		}
	}
	flush()
	return result
}

func appendBreak(rnd *rand.Rand, text string, p lang.Profile) string {
	if len(p.BreakParticles) > 0 {
		return text + p.BreakParticles[rnd.Intn(len(p.BreakParticles))]
	}
	return text + "."
}
