// internal/dictionary/raw.go
//
// Decoding of the bulk dictionary wire format:
//
//	{ "dahar": { "data": { "entri": [ { "makna": [
//	    { "submakna": ["makan"],
//	      "kelas": [ {"kode":"v","nama":"Verba"}, {"kode":"Jw","nama":"Jawa"} ] }
//	] } ] } } }
//
// Only the first entry's first sense is distilled into an Entry; any
// structure beyond that is treated as opaque and dropped.

package dictionary

import (
	"encoding/json"
	"fmt"
	"io"
)

type rawClass struct {
	Kode string `json:"kode"`
	Nama string `json:"nama"`
}

type rawSense struct {
	Submakna []string   `json:"submakna"`
	Kelas    []rawClass `json:"kelas"`
}

type rawWord struct {
	Data struct {
		Entri []struct {
			Makna []rawSense `json:"makna"`
		} `json:"entri"`
	} `json:"data"`
}

// ParseRaw decodes a bulk dictionary document into distilled entries.
func ParseRaw(r io.Reader) (map[string]Entry, error) {
	var raw map[string]rawWord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("dictionary: decode: %w", err)
	}

	out := make(map[string]Entry, len(raw))
	for word, rw := range raw {
		e := Entry{Word: word}
		if len(rw.Data.Entri) > 0 && len(rw.Data.Entri[0].Makna) > 0 {
			sense := rw.Data.Entri[0].Makna[0]
			if len(sense.Submakna) > 0 {
				e.Definition = sense.Submakna[0]
			}
			for _, c := range sense.Kelas {
				e.Classes = append(e.Classes, SenseClass{Code: c.Kode, Name: c.Nama})
			}
		}
		out[word] = e
	}
	return out, nil
}
