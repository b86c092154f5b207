package game

import (
	"errors"
	"strings"
	"testing"
)

func TestScoreRepeatedLetters(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		guess  string
		want   []Mark
	}{
		{
			name:   "exact match",
			secret: "dahar",
			guess:  "dahar",
			want:   []Mark{MarkHit, MarkHit, MarkHit, MarkHit, MarkHit},
		},
		{
			name:   "no overlap",
			secret: "dahar",
			guess:  "obseq",
			want:   []Mark{MarkMiss, MarkMiss, MarkMiss, MarkMiss, MarkMiss},
		},
		{
			name:   "hits exhaust the letter budget first",
			secret: "abca",
			guess:  "aaxa",
			want:   []Mark{MarkHit, MarkMiss, MarkMiss, MarkHit},
		},
		{
			name:   "guess repeats letter secret has once",
			secret: "abcd",
			guess:  "aace",
			want:   []Mark{MarkHit, MarkMiss, MarkHit, MarkMiss},
		},
		{
			name:   "two presents for doubled secret letter",
			secret: "kakak",
			guess:  "aakka",
			want:   []Mark{MarkPresent, MarkHit, MarkHit, MarkPresent, MarkMiss},
		},
		{
			name:   "placeholder guess is all miss",
			secret: "dahar",
			guess:  "?????",
			want:   []Mark{MarkMiss, MarkMiss, MarkMiss, MarkMiss, MarkMiss},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.secret, tt.guess)
			if err != nil {
				t.Fatalf("Score(%q, %q) error: %v", tt.secret, tt.guess, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Score(%q, %q) = %v, want %v", tt.secret, tt.guess, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Score(%q, %q)[%d] = %v, want %v", tt.secret, tt.guess, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScoreLengthMismatch(t *testing.T) {
	if _, err := Score("dahar", "buku"); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

// A letter must never be reported hit/present more often than it occurs
// in the secret.
func TestScoreNeverOvercounts(t *testing.T) {
	pairs := [][2]string{
		{"abca", "aaxa"},
		{"kakak", "kkkkk"},
		{"minum", "mumun"},
		{"banana", "ananab"},
		{"buku", "kuku"},
	}
	for _, p := range pairs {
		secret, guess := p[0], p[1]
		marks, err := Score(secret, guess)
		if err != nil {
			t.Fatalf("Score(%q, %q) error: %v", secret, guess, err)
		}
		for c := 'a'; c <= 'z'; c++ {
			credited := 0
			for i, m := range marks {
				if rune(guess[i]) == c && m != MarkMiss {
					credited++
				}
			}
			if avail := strings.Count(secret, string(c)); credited > avail {
				t.Fatalf("Score(%q, %q) credits %q %d times, secret has %d",
					secret, guess, c, credited, avail)
			}
		}
	}
}
