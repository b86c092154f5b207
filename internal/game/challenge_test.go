package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katakilat/internal/dictionary"
)

func testDict(t *testing.T, words ...string) *dictionary.Dictionary {
	t.Helper()
	d := dictionary.New()
	entries := make(map[string]dictionary.Entry, len(words))
	for _, w := range words {
		entries[w] = dictionary.Entry{Word: w, Definition: "arti " + w}
	}
	d.Merge(entries)
	return d
}

func testGen(d *dictionary.Dictionary) *Generator {
	return NewGenerator(d, rand.New(rand.NewSource(1)))
}

func TestGenerateClassicAlternates(t *testing.T) {
	d := testDict(t, "buku", "baju", "batu", "bima", "cinta", "bu")
	g := testGen(d)

	for i := 0; i < 20; i++ {
		ch := g.Generate(ModeClassic)
		require.NotEmpty(t, ch.Target)
		require.Equal(t, ch.Target[:1], ch.StartLetter)
		require.Equal(t, ch.Target[len(ch.Target)-1:], ch.EndLetter)
		for _, alt := range ch.Alternates {
			assert.True(t, strings.HasPrefix(alt, ch.StartLetter), "alternate %q start", alt)
			assert.True(t, strings.HasSuffix(alt, ch.EndLetter), "alternate %q end", alt)
			assert.NotEqual(t, ch.Target, alt)
		}
	}
}

func TestGenerateClassicEmptyPoolFallsBack(t *testing.T) {
	g := testGen(dictionary.New())
	ch := g.Generate(ModeClassic)
	require.Equal(t, "buku", ch.Target)
	require.Equal(t, "b", ch.StartLetter)
	require.Equal(t, "u", ch.EndLetter)
	require.Empty(t, ch.Alternates)
}

func TestGenerateTargetLengthBounds(t *testing.T) {
	d := testDict(t, "ab", "dahar", "cinta", "minum", "berkepanjangan")
	g := testGen(d)
	for i := 0; i < 20; i++ {
		ch := g.Generate(ModeScramble)
		assert.GreaterOrEqual(t, len(ch.Target), 4)
		assert.LessOrEqual(t, len(ch.Target), 8)
	}
}

func TestGenerateDefinitionRequiresDefinition(t *testing.T) {
	d := dictionary.New()
	d.Merge(map[string]dictionary.Entry{
		"tanpa": {Word: "tanpa"}, // no definition
		"dahar": {Word: "dahar", Definition: "makan", Classes: []dictionary.SenseClass{
			{Code: "v", Name: "Verba"},
			{Code: "Jw", Name: "Jawa"},
		}},
	})
	g := testGen(d)
	for i := 0; i < 20; i++ {
		ch := g.Generate(ModeDefinition)
		require.Equal(t, "dahar", ch.Target)
		require.Equal(t, "makan", ch.Definition)
		require.Equal(t, "Jawa", ch.OriginTag)
	}
}

func TestGenerateTargetEmptyPoolFallsBack(t *testing.T) {
	g := testGen(dictionary.New())
	for _, mode := range []Mode{ModeDefinition, ModeScramble, ModeWordleAuto} {
		ch := g.Generate(mode)
		require.Equal(t, "makan", ch.Target, "mode %s", mode)
	}
}

func TestScrambleIsPermutation(t *testing.T) {
	d := testDict(t, "dahar")
	g := testGen(d)
	ch := g.Generate(ModeScramble)
	require.Equal(t, "dahar", ch.Target)

	a := strings.Split(ch.Target, "")
	b := strings.Split(ch.Scrambled, "")
	sort.Strings(a)
	sort.Strings(b)
	require.Equal(t, a, b, "scramble must keep the letter multiset")
}

func TestRandomFlashSameLength(t *testing.T) {
	d := testDict(t, "dahar", "makan", "minum", "bu")
	g := testGen(d)

	f := g.RandomFlash("cinta")
	require.Len(t, f.Word, 5)
	require.Len(t, f.Marks, 5)
	require.Contains(t, []string{"dahar", "makan", "minum"}, f.Word)
}

func TestRandomFlashEmptyPoolPlaceholder(t *testing.T) {
	g := testGen(dictionary.New())
	f := g.RandomFlash("dahar")
	require.Equal(t, "?????", f.Word)
	for _, m := range f.Marks {
		require.Equal(t, MarkMiss, m)
	}
}
