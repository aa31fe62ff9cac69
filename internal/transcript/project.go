package transcript

import (
	"github.com/inodb/vibe-structure/internal/interval"
)

// Project maps region onto t and returns the highlighted residue interval.
// The second return value is false when there is nothing to highlight: no
// region, no gene or exons, or no exon overlapping the region.
//
// Exon derived fields are recomputed on every call. When the region spans
// several exons the result is the min/max envelope of the per-exon
// projections, which can include residues that straddle an exon boundary.
func Project(t *Transcript, region *Region) (Highlight, bool) {
	if region == nil || !t.HasExons() {
		if t != nil {
			clearDerived(t)
		}
		return Highlight{}, false
	}

	geneStart := t.Gene.StartIndex
	query := region.Range()

	for i := range t.Exons {
		ex := &t.Exons[i]
		ex.AffectedRange = nil
		if !interval.Overlaps(query, ex.Absolute(geneStart)) {
			continue
		}
		if r, ok := interval.Clamp(query.Shift(-geneStart), ex.Span()); ok {
			ex.AffectedRange = &r
		}
	}

	var (
		cursor      int64
		affected    bool
		affectedMin int64
		affectedMax int64
	)
	for i := range t.Exons {
		ex := &t.Exons[i]
		ex.Relative = interval.Range{Start: cursor, End: cursor + ex.Length()}
		cursor += ex.Length() + 1

		ex.AffectedRelativeRange = nil
		if !ex.IsAffected() {
			continue
		}
		rel := ex.AffectedRange.Shift(ex.Relative.Start - ex.Start)
		ex.AffectedRelativeRange = &rel

		if !affected || rel.Start < affectedMin {
			affectedMin = rel.Start
		}
		if !affected || rel.End > affectedMax {
			affectedMax = rel.End
		}
		affected = true
	}

	if !affected {
		return Highlight{}, false
	}
	return Highlight{Start: ResidueOf(affectedMin), End: ResidueOf(affectedMax)}, true
}

func clearDerived(t *Transcript) {
	for i := range t.Exons {
		t.Exons[i].AffectedRange = nil
		t.Exons[i].AffectedRelativeRange = nil
	}
}
