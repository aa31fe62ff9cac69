package transcript

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Decode reads a transcript annotation as supplied by the genome browser:
//
//	{"id": "...", "gene": {"startIndex": 1000}, "exon": [{"start": 0, "end": 29}]}
func Decode(r io.Reader) (*Transcript, error) {
	var t Transcript
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	for i := range t.Exons {
		if t.Exons[i].Start > t.Exons[i].End {
			return nil, fmt.Errorf("exon %d: start %d after end %d", i+1, t.Exons[i].Start, t.Exons[i].End)
		}
		if t.Exons[i].Number == 0 {
			t.Exons[i].Number = i + 1
		}
	}
	return &t, nil
}

// Load reads a transcript annotation from a JSON file.
func Load(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
