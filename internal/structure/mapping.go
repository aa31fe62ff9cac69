// Package structure resolves residue highlights onto the chain-local
// numbering of a 3D structure through a position mapping table.
package structure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/vibe-structure/internal/interval"
)

// ErrMalformedMapping is matched by every error produced for an entry that
// does not follow the chainList=start-end grammar.
var ErrMalformedMapping = errors.New("malformed position mapping")

// MappingError describes one rejected mapping entry.
type MappingError struct {
	Index  int    // 0-based position of the entry in the table
	Entry  string // entry text after trimming
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: entry %d %q: %s", ErrMalformedMapping, e.Index, e.Entry, e.Reason)
}

// Is reports whether target is ErrMalformedMapping.
func (e *MappingError) Is(target error) bool {
	return target == ErrMalformedMapping
}

// Entry is one row of a position mapping table: a set of chains sharing one
// structural residue range.
type Entry struct {
	Chains []string
	Range  interval.Range
}

// String formats the entry back into table syntax.
func (e Entry) String() string {
	return fmt.Sprintf("%s=%d-%d", strings.Join(e.Chains, "/"), e.Range.Start, e.Range.End)
}

// ParseEntry parses a single "A/B=10-250" entry. Surrounding whitespace is ignored.
func ParseEntry(s string) (Entry, error) {
	s = strings.TrimSpace(s)
	bad := func(reason string) (Entry, error) {
		return Entry{}, &MappingError{Entry: s, Reason: reason}
	}

	chainList, rng, ok := strings.Cut(s, "=")
	if !ok {
		return bad("missing '='")
	}

	var chains []string
	for _, id := range strings.Split(chainList, "/") {
		id = strings.TrimSpace(id)
		if id == "" {
			return bad("empty chain identifier")
		}
		chains = append(chains, id)
	}

	startText, endText, ok := strings.Cut(rng, "-")
	if !ok {
		return bad("missing '-' in range")
	}
	start, err := strconv.ParseUint(strings.TrimSpace(startText), 10, 63)
	if err != nil {
		return bad(fmt.Sprintf("invalid range start %q", startText))
	}
	end, err := strconv.ParseUint(strings.TrimSpace(endText), 10, 63)
	if err != nil {
		return bad(fmt.Sprintf("invalid range end %q", endText))
	}
	if start > end {
		return bad(fmt.Sprintf("range start %d after end %d", start, end))
	}

	return Entry{
		Chains: chains,
		Range:  interval.Range{Start: int64(start), End: int64(end)},
	}, nil
}

// ParseMapping parses a comma-separated mapping table. Malformed entries are
// skipped; the well-formed ones are returned together with an error joining
// one *MappingError per rejected entry. An empty table yields no entries.
func ParseMapping(table string) ([]Entry, error) {
	if strings.TrimSpace(table) == "" {
		return nil, nil
	}

	var (
		entries []Entry
		errs    []error
	)
	for i, part := range strings.Split(table, ",") {
		e, err := ParseEntry(part)
		if err != nil {
			var me *MappingError
			if errors.As(err, &me) {
				me.Index = i
			}
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errors.Join(errs...)
}
