package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
	"github.com/Sorranop01/vdo-content-sub000/internal/rate"
)

// sentenceEnds matches Thai and Latin sentence-final punctuation runs.
var sentenceEnds = regexp.MustCompile(`[.!?।॥]+\s*`)

// SplitText segments plain narration by estimated speaking time. The script
// is broken into sentences, over-long sentences into clauses, and the pieces
// greedily packed so each segment's estimate stays at or under the ceiling.
// A single unbreakable clause past the ceiling becomes an oversized segment.
func SplitText(script string, p lang.Profile, prof model.CalibrationProfile, c model.Constraints) []model.Segment {
	sentences := splitSentences(script, p, prof, c)

	var segments []model.Segment
	current := ""
	for _, sentence := range sentences {
		test := sentence
		if current != "" {
			test = current + " " + sentence
		}
		if rate.EstimateWithProfile(test, p, prof) > c.MaxDuration && current != "" {
			segments = append(segments, textSegment(current, p, prof, c, len(segments)+1))
			current = sentence
			continue
		}
		current = test
	}
	if strings.TrimSpace(current) != "" {
		segments = append(segments, textSegment(current, p, prof, c, len(segments)+1))
	}
	return segments
}

// splitSentences breaks a script on newlines and sentence punctuation, then
// expands any sentence whose estimate exceeds the ceiling.
func splitSentences(script string, p lang.Profile, prof model.CalibrationProfile, c model.Constraints) []string {
	var sentences []string
	for _, line := range strings.Split(strings.TrimSpace(script), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, part := range sentenceEnds.Split(line, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sentences = append(sentences, expandSentence(part, p, prof, c)...)
		}
	}
	return sentences
}

// expandSentence returns the sentence as-is when it fits the ceiling, else
// splits it on clause boundaries and packs the clauses back together. Each
// clause is expanded recursively before packing.
func expandSentence(sentence string, p lang.Profile, prof model.CalibrationProfile, c model.Constraints) []string {
	if rate.EstimateWithProfile(sentence, p, prof) <= c.MaxDuration {
		return []string{sentence}
	}
	clauses := splitClauses(sentence, p)
	if len(clauses) <= 1 {
		// No clause boundary left. The sentence stays whole and the packer
		// surfaces it as an oversized segment.
		return []string{sentence}
	}
	var expanded []string
	for _, clause := range clauses {
		expanded = append(expanded, expandSentence(clause, p, prof, c)...)
	}
	return packClauses(expanded, p, prof, c)
}

// packClauses greedily merges adjacent clauses while the combined estimate
// stays at or under the ceiling.
func packClauses(clauses []string, p lang.Profile, prof model.CalibrationProfile, c model.Constraints) []string {
	var packed []string
	buffer := ""
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		test := clause
		if buffer != "" {
			test = buffer + " " + clause
		}
		if rate.EstimateWithProfile(test, p, prof) <= c.MaxDuration {
			buffer = test
			continue
		}
		if buffer != "" {
			packed = append(packed, buffer)
		}
		buffer = clause
	}
	if buffer != "" {
		packed = append(packed, buffer)
	}
	return packed
}

// splitClauses cuts text after every clause-ending marker and before every
// conjunction that follows whitespace. The input is never modified; parts
// come back trimmed of the separators between them.
func splitClauses(text string, p lang.Profile) []string {
	runes := []rune(text)
	enders := runeLists(p.ClauseEnders)
	conjunctions := runeLists(p.Conjunctions)

	var parts []string
	start := 0
	i := 0
	for i < len(runes) {
		if i > start && endsWithAny(runes[start:i], enders) {
			parts = append(parts, string(runes[start:i]))
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			start = i
			continue
		}
		if unicode.IsSpace(runes[i]) {
			j := i
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && i > start && hasPrefixAny(runes[j:], conjunctions) {
				parts = append(parts, string(runes[start:i]))
				start = j
			}
			i = j
			continue
		}
		i++
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

func runeLists(words []string) [][]rune {
	out := make([][]rune, 0, len(words))
	for _, w := range words {
		out = append(out, []rune(w))
	}
	return out
}

func endsWithAny(runes []rune, markers [][]rune) bool {
	for _, m := range markers {
		if len(m) == 0 || len(m) > len(runes) {
			continue
		}
		match := true
		for i := range m {
			if runes[len(runes)-len(m)+i] != m[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func hasPrefixAny(runes []rune, markers [][]rune) bool {
	for _, m := range markers {
		if len(m) == 0 || len(m) > len(runes) {
			continue
		}
		match := true
		for i := range m {
			if runes[i] != m[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func textSegment(text string, p lang.Profile, prof model.CalibrationProfile, c model.Constraints, order int) model.Segment {
	text = strings.TrimSpace(text)
	estimate := rate.EstimateWithProfile(text, p, prof)
	return model.Segment{
		Order:     order,
		Text:      text,
		Estimated: estimate,
		Oversized: estimate > c.MaxDuration+durationSlack,
	}
}
