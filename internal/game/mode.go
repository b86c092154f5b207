// internal/game/mode.go
//
// Game modes and the per-session mode queue.

package game

import "math/rand"

// Mode selects the rule set for one round.
type Mode string

const (
	ModeClassic    Mode = "classic"     // word with given start/end letters
	ModeDefinition Mode = "definition"  // guess the word from its definition
	ModeWordleAuto Mode = "wordle_auto" // letter-feedback guess race
	ModeScramble   Mode = "scramble"    // unscramble the letters
)

// modesPerGame is how many rounds of each mode a session plays.
const modesPerGame = 3

// Pausable reports whether the host may freeze the result countdown in
// this mode. Classic results rotate through the alternate answers and
// are never paused.
func (m Mode) Pausable() bool {
	return m != ModeClassic
}

func (m Mode) String() string { return string(m) }

// buildQueue returns the 12-round mode queue: three rounds of each
// mode, Fisher-Yates shuffled.
func buildQueue(rng *rand.Rand) []Mode {
	queue := make([]Mode, 0, 4*modesPerGame)
	for _, m := range []Mode{ModeClassic, ModeDefinition, ModeWordleAuto, ModeScramble} {
		for i := 0; i < modesPerGame; i++ {
			queue = append(queue, m)
		}
	}
	rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	return queue
}
