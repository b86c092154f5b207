// internal/game/feedback.go
//
// Per-letter feedback for the guess-the-word mode, using the classic
// two-pass scoring algorithm:
//
//	Pass 1: mark exact matches as Hit and count the remaining
//	        (non-hit) secret letters.
//	Pass 2: for each non-hit guess letter, consume one remaining count
//	        for Present, otherwise Miss.
//
// The count bookkeeping guarantees a letter is never reported Present
// more times than it occurs, unmatched, in the secret.
//
// Score is pure and deterministic. Unequal lengths are a caller bug and
// come back as ErrLengthMismatch; the function never resizes.

package game

import "errors"

// Mark is the evaluation result for a single letter of a guess.
type Mark string

const (
	MarkHit     Mark = "hit"     // right letter, right position
	MarkPresent Mark = "present" // right letter, wrong position
	MarkMiss    Mark = "miss"    // letter not in the secret
)

// ErrLengthMismatch reports a guess/secret length disagreement.
// Callers must guarantee equal lengths; seeing this error at runtime
// means a programming error upstream.
var ErrLengthMismatch = errors.New("game: guess and secret lengths differ")

// Score evaluates guess against secret, one Mark per position. Inputs
// are expected lowercase; characters outside a-z only ever match by
// exact position.
func Score(secret, guess string) ([]Mark, error) {
	secretRunes := []rune(secret)
	guessRunes := []rune(guess)
	if len(secretRunes) != len(guessRunes) {
		return nil, ErrLengthMismatch
	}

	n := len(guessRunes)
	res := make([]Mark, n)

	// Letter frequency for the non-hit positions (a-z). Anything
	// outside that range (e.g. the "?" placeholder) can never match.
	var counts [26]int

	for i := 0; i < n; i++ {
		if guessRunes[i] == secretRunes[i] {
			res[i] = MarkHit
		} else if j := idx(secretRunes[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guessRunes[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res, nil
}

// idx maps a lowercase ASCII letter rune to 0..25.
func idx(r rune) int { return int(r - 'a') }
