package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateClassic(t *testing.T) {
	d := testDict(t, "buku", "baju", "bu")
	ch := &Challenge{Mode: ModeClassic, Target: "baju", StartLetter: "b", EndLetter: "u"}

	tests := []struct {
		name    string
		text    string
		correct bool
		answer  string
		points  int
	}{
		{"word inside sentence", "aku suka buku sekali", true, "buku", 4},
		{"exact word", "buku", true, "buku", 4},
		{"punctuated word", "b-u-k-u!", true, "buku", 4},
		{"uppercase", "BUKU", true, "buku", 4},
		{"not in dictionary", "bulu", false, "", 0},
		{"wrong affixes", "baja makan", false, "", 0},
		{"too short", "bu", false, "", 0},
		{"empty", "", false, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := evaluate(ch, d, tt.text)
			require.Equal(t, tt.correct, v.Correct)
			require.Equal(t, tt.answer, v.Answer)
			require.Equal(t, tt.points, v.Points)
		})
	}
}

// The stripped tokenization may also glue letters across punctuation
// into a valid answer; that redundancy is intentional.
func TestEvaluateClassicStrippedBeatsWords(t *testing.T) {
	d := testDict(t, "batu")
	ch := &Challenge{Mode: ModeClassic, Target: "batu", StartLetter: "b", EndLetter: "u"}

	v := evaluate(ch, d, "ba tu")
	require.True(t, v.Correct)
	require.Equal(t, "batu", v.Answer)
	require.Equal(t, 4, v.Points)
}

func TestEvaluateExactModes(t *testing.T) {
	d := testDict(t, "dahar")
	for _, mode := range []Mode{ModeDefinition, ModeScramble, ModeWordleAuto} {
		ch := &Challenge{Mode: mode, Target: "dahar"}

		v := evaluate(ch, d, "apakah itu dahar?")
		require.True(t, v.Correct, "mode %s", mode)
		require.Equal(t, "dahar", v.Answer)
		require.Equal(t, 5, v.Points)

		v = evaluate(ch, d, "DAHAR")
		require.True(t, v.Correct)

		// Substring of a longer token is not a match.
		v = evaluate(ch, d, "daharkan")
		require.False(t, v.Correct)
	}
}
