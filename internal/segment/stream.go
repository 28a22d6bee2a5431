// Package segment cuts narration into duration-bounded pieces.
package segment

import (
	"math"
	"strings"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// durationSlack absorbs float noise when comparing rounded spans.
const durationSlack = 1e-9

// SplitTokens groups a timed token stream into segments bounded by the
// duration constraints. The walk has three phases per segment: accumulate
// freely up to the minimum, close on the first natural break between the
// minimum and the maximum, and past the maximum cut at the latest break
// within the last five buffered tokens, else force the cut. A trailing
// segment shorter than the minimum is folded into its predecessor when the
// combined span stays within the merge tolerance. The cut records describe
// every interior boundary in order.
func SplitTokens(tokens []model.Token, p lang.Profile, c model.Constraints) ([]model.Segment, []model.CutRecord) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var segments []model.Segment
	var cuts []model.CutRecord
	var buf []model.Token
	sceneStart := tokens[0].Start

	flush := func(words []model.Token, start float64) bool {
		seg, ok := buildSegment(words, start, p)
		if !ok {
			return false
		}
		if seg.End-seg.Start > c.MaxDuration+durationSlack {
			seg.Oversized = true
		}
		segments = append(segments, seg)
		return true
	}

	for _, word := range tokens {
		potential := word.End - sceneStart

		switch {
		case potential <= c.MinDuration:
			buf = append(buf, word)

		case potential <= c.MaxDuration:
			buf = append(buf, word)
			if p.IsNaturalBreak(word.Text) {
				if flush(buf, sceneStart) {
					cuts = append(cuts, model.CutRecord{
						Kind:      model.CutNatural,
						At:        round2(word.End),
						BreakText: strings.TrimSpace(word.Text),
					})
				}
				buf = nil
				sceneStart = word.End
			}

		default:
			if len(buf) == 0 {
				// A single token already past the ceiling. Keep it and let
				// the next iteration or the final flush close it.
				buf = []model.Token{word}
				sceneStart = word.Start
				continue
			}

			// Look for the latest natural break among the last few tokens.
			bestSplit := len(buf)
			kind := model.CutForced
			breakText := ""
			searchStart := len(buf) - 5
			if searchStart < 0 {
				searchStart = 0
			}
			for j := len(buf) - 1; j >= searchStart; j-- {
				if p.IsNaturalBreak(buf[j].Text) {
					bestSplit = j + 1
					kind = model.CutWindow
					breakText = strings.TrimSpace(buf[j].Text)
					break
				}
			}

			if flush(buf[:bestSplit], sceneStart) {
				cuts = append(cuts, model.CutRecord{
					Kind:      kind,
					At:        round2(buf[bestSplit-1].End),
					BreakText: breakText,
				})
			}

			remaining := append([]model.Token(nil), buf[bestSplit:]...)
			buf = append(remaining, word)
			sceneStart = buf[0].Start
		}
	}

	if len(buf) > 0 {
		flush(buf, sceneStart)
	}

	segments, cuts = mergeTrailing(segments, cuts, p, c)

	for i := range segments {
		segments[i].Order = i + 1
	}
	return segments, cuts
}

// mergeTrailing folds a short final segment into its predecessor when the
// combined span fits within the ceiling plus the merge tolerance. One pass,
// last two segments only.
func mergeTrailing(segments []model.Segment, cuts []model.CutRecord, p lang.Profile, c model.Constraints) ([]model.Segment, []model.CutRecord) {
	if len(segments) < 2 {
		return segments, cuts
	}
	last := segments[len(segments)-1]
	if last.End-last.Start >= c.MinDuration {
		return segments, cuts
	}
	prev := segments[len(segments)-2]
	if last.End-prev.Start > c.MaxDuration+c.MergeTolerance+durationSlack {
		return segments, cuts
	}

	merged := model.Segment{
		Start:     prev.Start,
		End:       last.End,
		Text:      joinTexts(p, prev.Text, last.Text),
		Tokens:    append(append([]model.Token(nil), prev.Tokens...), last.Tokens...),
		Oversized: prev.Oversized || last.Oversized,
	}
	segments[len(segments)-2] = merged
	segments = segments[:len(segments)-1]
	if len(cuts) > 0 {
		cuts[len(cuts)-1].Kind = model.CutMerged
		cuts[len(cuts)-1].BreakText = ""
	}
	return segments, cuts
}

// buildSegment assembles one segment from buffered tokens. Token texts are
// concatenated as-is so backend spacing survives; the language's word
// separator bridges tokens that carry no spacing of their own.
func buildSegment(words []model.Token, start float64, p lang.Profile) (model.Segment, bool) {
	if len(words) == 0 {
		return model.Segment{}, false
	}
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteString(separatorFor(p, words[i-1].Text, w.Text))
		}
		b.WriteString(w.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return model.Segment{}, false
	}
	return model.Segment{
		Start:  round2(start),
		End:    round2(words[len(words)-1].End),
		Text:   text,
		Tokens: append([]model.Token(nil), words...),
	}, true
}

// joinTexts concatenates two segment texts the same way tokens are joined.
func joinTexts(p lang.Profile, left, right string) string {
	return strings.TrimSpace(left + separatorFor(p, left, right) + right)
}

func separatorFor(p lang.Profile, left, right string) string {
	if p.WordSeparator == "" {
		return ""
	}
	if strings.HasSuffix(left, " ") || strings.HasPrefix(right, " ") {
		return ""
	}
	return p.WordSeparator
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
