// Package interval provides overlap primitives over closed integer ranges.
package interval

// Range is a closed interval [Start, End] with Start <= End.
type Range struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains returns true if pos lies within the range, bounds inclusive.
func (r Range) Contains(pos int64) bool {
	return pos >= r.Start && pos <= r.End
}

// Len returns the number of positions covered by the range.
func (r Range) Len() int64 {
	return r.End - r.Start + 1
}

// Shift returns the range moved by delta.
func (r Range) Shift(delta int64) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Overlaps reports whether region touches target: either endpoint of region
// falls inside target, or region strictly encloses target.
//
// Callers pass the query interval first and the fixed interval second.
func Overlaps(region, target Range) bool {
	return target.Contains(region.Start) ||
		target.Contains(region.End) ||
		(region.Start < target.Start && region.End > target.End)
}

// Clamp returns the intersection of region and target. The second return
// value is false when the two do not overlap.
func Clamp(region, target Range) (Range, bool) {
	if !Overlaps(region, target) {
		return Range{}, false
	}
	return Range{
		Start: max(region.Start, target.Start),
		End:   min(region.End, target.End),
	}, true
}
