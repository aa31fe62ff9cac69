package structure

import (
	"github.com/inodb/vibe-structure/internal/interval"
)

// ChainHighlight is a highlighted sub-range in 1-based chain-local numbering.
type ChainHighlight struct {
	ChainID string `json:"chainId"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
}

// Resolve intersects the residue highlight with every mapping entry and
// emits one ChainHighlight per chain of each overlapping entry, in table
// order. A nil highlight resolves to nothing. Chains that appear in several
// entries produce several records.
func Resolve(entries []Entry, highlight *interval.Range) []ChainHighlight {
	if highlight == nil {
		return nil
	}

	var out []ChainHighlight
	for _, e := range entries {
		r, ok := interval.Clamp(*highlight, e.Range)
		if !ok {
			continue
		}
		local := r.Shift(1 - e.Range.Start)
		for _, id := range e.Chains {
			out = append(out, ChainHighlight{ChainID: id, Start: local.Start, End: local.End})
		}
	}
	return out
}

// ResolveMapping parses table and resolves highlight against it. Malformed
// entries are reported through the returned error while the remaining
// entries are still resolved.
func ResolveMapping(table string, highlight *interval.Range) ([]ChainHighlight, error) {
	entries, err := ParseMapping(table)
	return Resolve(entries, highlight), err
}
