// internal/game/validate.go
//
// Free-text answer matching.
//
// Every chat message is checked under two tokenizations of the
// lowercased text:
//
//	stripped: all non-[a-z] characters removed ("b-u-k-u!" -> "buku")
//	words:    split on runs of non-[a-z] ("aku suka buku" -> 3 tokens)
//
// The redundancy is intentional policy: an answer hidden in punctuation
// and an answer used inside a sentence both count.

package game

import (
	"strings"

	"katakilat/internal/dictionary"
)

// Verdict is the outcome of validating one chat message.
type Verdict struct {
	Correct bool
	Points  int
	Answer  string // the matched word, lowercase
}

// evaluate checks text against the active challenge. It is pure; round
// phase and per-round winner dedupe are prechecked by the session.
func evaluate(ch *Challenge, dict *dictionary.Dictionary, text string) Verdict {
	raw := strings.ToLower(text)
	stripped := stripNonAlpha(raw)
	words := splitAlphaRuns(raw)

	if ch.Mode == ModeClassic {
		return evaluateClassic(ch, dict, stripped, words)
	}
	return evaluateExact(ch, stripped, words)
}

// evaluateClassic accepts any dictionary word of length >= 3 with the
// round's start and end letters. Points equal the matched word's length.
func evaluateClassic(ch *Challenge, dict *dictionary.Dictionary, stripped string, words []string) Verdict {
	matches := func(w string) bool {
		return len(w) >= 3 &&
			strings.HasPrefix(w, ch.StartLetter) &&
			strings.HasSuffix(w, ch.EndLetter) &&
			dict.Contains(w)
	}

	if matches(stripped) {
		return Verdict{Correct: true, Points: len(stripped), Answer: stripped}
	}
	for _, w := range words {
		if matches(w) {
			return Verdict{Correct: true, Points: len(w), Answer: w}
		}
	}
	return Verdict{}
}

// evaluateExact accepts only the exact target word, either as the whole
// stripped message or as one of its words. Points equal the target's
// length.
func evaluateExact(ch *Challenge, stripped string, words []string) Verdict {
	if stripped == ch.Target {
		return Verdict{Correct: true, Points: len(ch.Target), Answer: ch.Target}
	}
	for _, w := range words {
		if w == ch.Target {
			return Verdict{Correct: true, Points: len(ch.Target), Answer: ch.Target}
		}
	}
	return Verdict{}
}

// stripNonAlpha removes every character outside [a-z].
func stripNonAlpha(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitAlphaRuns splits on any run of non-[a-z] characters.
func splitAlphaRuns(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}
