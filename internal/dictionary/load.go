// internal/dictionary/load.go
//
// Dictionary bootstrap.
//
// Load behavior:
//  1. Start from a small embedded default set (default_small.json) so the
//     engine can run with no configuration at all.
//  2. Merge every file listed in paths on top, in order. Later files win
//     on key collisions.
//
// File paths usually come from the DICT_FILES env var (comma-separated).

package dictionary

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed default_small.json
var embeddedDefault []byte

// Load builds a Dictionary from the embedded defaults plus the given
// bulk JSON files.
func Load(paths []string) (*Dictionary, error) {
	d := New()

	base, err := ParseRaw(bytes.NewReader(embeddedDefault))
	if err != nil {
		return nil, fmt.Errorf("dictionary: embedded defaults: %w", err)
	}
	d.Merge(base)

	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := d.MergeFile(p); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MergeFile parses one bulk JSON file and merges it in.
func (d *Dictionary) MergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ParseRaw(f)
	if err != nil {
		return fmt.Errorf("dictionary: parse %s: %w", path, err)
	}
	d.Merge(entries)
	return nil
}
