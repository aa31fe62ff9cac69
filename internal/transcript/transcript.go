// Package transcript projects genomic regions onto the spliced coordinate
// space of a transcript and from there onto residue (codon) numbering.
package transcript

import (
	"github.com/inodb/vibe-structure/internal/interval"
)

// Gene is the owning gene of a transcript.
type Gene struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	StartIndex int64  `json:"startIndex"` // absolute genomic offset of the gene's first base
}

// Exon is a single exon in gene-local coordinates.
//
// Start and End are inputs. The remaining fields are derived and overwritten
// by every call to Project.
type Exon struct {
	Number int   `json:"number,omitempty"` // Exon number (1-based), informational
	Start  int64 `json:"start"`            // Gene-local start, inclusive
	End    int64 `json:"end"`              // Gene-local end, inclusive

	AffectedRange         *interval.Range `json:"affectedRange,omitempty"`         // Region ∩ exon, gene-local
	Relative              interval.Range  `json:"relative"`                        // Position in spliced space
	AffectedRelativeRange *interval.Range `json:"affectedRelativeRange,omitempty"` // AffectedRange in spliced space
}

// Transcript is an ordered list of exons (splicing order) and its gene.
type Transcript struct {
	ID    string `json:"id,omitempty"`
	Gene  *Gene  `json:"gene"`
	Exons []Exon `json:"exon"`
}

// Region is a query interval in absolute genomic coordinates.
type Region struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

// Range returns the region as a closed interval.
func (r Region) Range() interval.Range {
	return interval.Range{Start: r.StartIndex, End: r.EndIndex}
}

// Highlight is a residue-coordinate interval produced by Project.
type Highlight = interval.Range

// Span returns the exon as a gene-local interval.
func (e *Exon) Span() interval.Range {
	return interval.Range{Start: e.Start, End: e.End}
}

// Absolute returns the exon in absolute genomic coordinates.
func (e *Exon) Absolute(geneStart int64) interval.Range {
	return e.Span().Shift(geneStart)
}

// Length returns the exon length minus one, i.e. End - Start.
func (e *Exon) Length() int64 {
	return e.End - e.Start
}

// IsAffected returns true if the last projection found an overlap with this exon.
func (e *Exon) IsAffected() bool {
	return e.AffectedRange != nil
}

// HasExons returns true if the transcript carries a gene and at least one exon.
func (t *Transcript) HasExons() bool {
	return t != nil && t.Gene != nil && len(t.Exons) > 0
}

// SplicedLength returns the length of the spliced coordinate space, including
// the one position reserved at every exon boundary.
func (t *Transcript) SplicedLength() int64 {
	var n int64
	for i := range t.Exons {
		n += t.Exons[i].Length() + 1
	}
	return n
}
