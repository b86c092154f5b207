// internal/dictionary/dictionary.go
//
// Word dictionary backing every game mode.
// Responsibilities:
//   - Lookup from lowercase word to its first-sense entry.
//   - Merge of imported entry maps (add/overwrite only, never remove).
//   - Word pool for random challenge sampling.
//   - Regional-origin detection by exclusion against the standard
//     grammatical classes.
//
// Absent keys are a normal negative result, not an error. Entries are
// immutable once stored; merges may happen between rounds while the
// engine is reading, so access is guarded by an RWMutex.

package dictionary

import (
	"strings"
	"sync"
)

// SenseClass is one grammatical/regional tag attached to a sense.
type SenseClass struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Entry is the distilled first sense of a dictionary word.
type Entry struct {
	Word       string       `json:"word"`
	Definition string       `json:"definition"`
	Classes    []SenseClass `json:"classes,omitempty"`
}

// standardClasses are the ordinary grammatical classes. A class outside
// this set marks a regional-language origin (e.g. "Jawa", "Sunda").
var standardClasses = map[string]struct{}{
	"Nomina":    {},
	"Verba":     {},
	"Adjektiva": {},
	"Adverbia":  {},
	"Numeralia": {},
	"Pronomina": {},
	"Partikel":  {},
}

// Origin returns the name of the first non-standard sense class, or ""
// when every class is a plain grammatical one. An empty result just
// means no origin badge.
func (e Entry) Origin() string {
	for _, c := range e.Classes {
		if _, std := standardClasses[c.Name]; !std {
			return c.Name
		}
	}
	return ""
}

// Dictionary is a merge-only map from lowercase word to Entry.
//
// The zero value is not usable; call New.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[string]Entry
	words   []string // cache of non-empty keys, insertion order
}

// New constructs an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{entries: make(map[string]Entry)}
}

// Lookup returns the entry for word (case-insensitive on ASCII keys).
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[strings.ToLower(word)]
	return e, ok
}

// Contains reports whether word is a dictionary key.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.Lookup(word)
	return ok
}

// Merge adds or overwrites entries. Keys are lowercased; empty keys are
// dropped. Existing keys keep their place in the word pool.
func (d *Dictionary) Merge(entries map[string]Entry) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	added := 0
	for k, e := range entries {
		k = strings.ToLower(k)
		if k == "" {
			continue
		}
		if _, exists := d.entries[k]; !exists {
			d.words = append(d.words, k)
		}
		e.Word = k
		d.entries[k] = e
		added++
	}
	return added
}

// Words returns a copy of the word pool.
func (d *Dictionary) Words() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

// Len reports the number of entries.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

