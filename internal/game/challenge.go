// internal/game/challenge.go
//
// Challenge generation.
//
// Word selection is bounded-retry random sampling over the dictionary
// pool (cap 100 attempts). An exhausted cap or an empty pool degrades
// to a fixed fallback word instead of failing; a session must always be
// able to start.

package game

import (
	"math/rand"
	"strings"

	"katakilat/internal/dictionary"
)

const (
	maxPickAttempts = 100

	// Fallbacks when sampling cannot produce a candidate.
	fallbackClassicWord = "buku"
	fallbackTargetWord  = "makan"
)

// Challenge is the puzzle payload for one round. Immutable for the
// round's duration; only the wordle_auto flash is regenerated outside.
type Challenge struct {
	Mode   Mode
	Target string // lowercase canonical answer

	// Classic.
	StartLetter string
	EndLetter   string
	Alternates  []string // other valid answers, shuffled for display

	// Definition (also shown on result screens of the other modes).
	Definition string
	OriginTag  string

	// Scramble.
	Scrambled string

	// WordleAuto.
	SecretLength int
}

// Flash is one simulated guess of the wordle_auto ambient stream.
// Display-only; it never affects gameplay.
type Flash struct {
	Word  string `json:"word"`
	Marks []Mark `json:"marks"`
}

// Generator produces challenges from a dictionary.
type Generator struct {
	dict *dictionary.Dictionary
	rng  *rand.Rand
}

// NewGenerator constructs a Generator. The rng is owned by the caller's
// single game timeline and must not be shared.
func NewGenerator(dict *dictionary.Dictionary, rng *rand.Rand) *Generator {
	return &Generator{dict: dict, rng: rng}
}

// Generate builds the challenge for one round of the given mode.
func (g *Generator) Generate(mode Mode) *Challenge {
	pool := g.dict.Words()
	if mode == ModeClassic {
		return g.generateClassic(pool)
	}
	return g.generateTarget(mode, pool)
}

// generateClassic picks an anchor word and derives the start/end letter
// pair plus every alternate pool word matching it.
func (g *Generator) generateClassic(pool []string) *Challenge {
	word := fallbackClassicWord
	for attempt := 0; attempt < maxPickAttempts && len(pool) > 0; attempt++ {
		w := pool[g.rng.Intn(len(pool))]
		if len(w) >= 3 && isAlpha(w) {
			word = w
			break
		}
	}

	start := word[:1]
	end := word[len(word)-1:]

	var alternates []string
	for _, w := range pool {
		if w != word && isAlpha(w) && strings.HasPrefix(w, start) && strings.HasSuffix(w, end) {
			alternates = append(alternates, w)
		}
	}
	g.rng.Shuffle(len(alternates), func(i, j int) {
		alternates[i], alternates[j] = alternates[j], alternates[i]
	})

	return &Challenge{
		Mode:        ModeClassic,
		Target:      word,
		StartLetter: start,
		EndLetter:   end,
		Alternates:  alternates,
	}
}

// generateTarget picks a 4-8 letter word for the definition, scramble
// and wordle_auto modes. Definition mode additionally requires a
// dictionary entry with a non-empty first-sense definition.
func (g *Generator) generateTarget(mode Mode, pool []string) *Challenge {
	word := fallbackTargetWord
	for attempt := 0; attempt < maxPickAttempts && len(pool) > 0; attempt++ {
		w := pool[g.rng.Intn(len(pool))]
		if len(w) < 4 || len(w) > 8 || !isAlpha(w) {
			continue
		}
		if mode == ModeDefinition {
			if entry, ok := g.dict.Lookup(w); !ok || entry.Definition == "" {
				continue
			}
		}
		word = w
		break
	}

	ch := &Challenge{
		Mode:         mode,
		Target:       word,
		SecretLength: len(word),
	}
	if entry, ok := g.dict.Lookup(word); ok {
		ch.Definition = entry.Definition
		ch.OriginTag = entry.Origin()
	}
	if mode == ModeScramble {
		ch.Scrambled = g.scramble(word)
	}
	return ch
}

// scramble returns the word's letters in a random permutation. A
// permutation equal to the original is accepted, not corrected.
func (g *Generator) scramble(word string) string {
	letters := []byte(word)
	g.rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return string(letters)
}

// RandomFlash picks a random pool word of the secret's length and
// scores it against the secret. With no same-length candidate it falls
// back to a "?" placeholder, which scores all-miss.
func (g *Generator) RandomFlash(secret string) Flash {
	var candidates []string
	for _, w := range g.dict.Words() {
		if len(w) == len(secret) && isAlpha(w) {
			candidates = append(candidates, w)
		}
	}

	guess := strings.Repeat("?", len(secret))
	if len(candidates) > 0 {
		guess = candidates[g.rng.Intn(len(candidates))]
	}

	// Lengths are equal by construction.
	marks, _ := Score(secret, guess)
	return Flash{Word: guess, Marks: marks}
}

// isAlpha reports whether s consists only of lowercase ASCII letters.
// Dictionary keys are lowercased on merge, so this is the a-zA-Z filter
// applied to them.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
