package transcript

// ResidueOf converts a 0-based spliced nucleotide offset to its 0-based
// residue (codon) index. Division floors toward negative infinity.
func ResidueOf(nt int64) int64 {
	q := nt / 3
	if nt%3 != 0 && nt < 0 {
		q--
	}
	return q
}

