// Package session drives the projection pipeline for one structure viewer.
// It decides, per input change, whether to load a structure, reproject the
// highlight, or only restyle, and serializes all viewer updates.
package session

import (
	"slices"

	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/transcript"
)

// Inputs is the full set of reactive inputs for one pipeline run.
type Inputs struct {
	StructureID  string                 // structure identifier, "" for none
	Transcript   *transcript.Transcript // compared by identity
	Region       *transcript.Region
	Position     string // position mapping table, "A/B=1-50,C=3-90"
	Chains       []represent.Chain
	ChainFilter  string
	DisplayMode  string
	DisplayColor string
}

type stage uint8

const (
	stageLoad stage = 1 << iota
	stageProject
	stagePlan

	stageAll = stageLoad | stageProject | stagePlan
)

// invalidated returns the pipeline stages a change from prev to next requires.
func invalidated(prev, next Inputs) stage {
	var s stage
	if prev.StructureID != next.StructureID {
		s |= stageLoad
	}
	if prev.Transcript != next.Transcript ||
		!sameRegion(prev.Region, next.Region) ||
		prev.Position != next.Position ||
		prev.ChainFilter != next.ChainFilter ||
		!slices.Equal(prev.Chains, next.Chains) {
		s |= stageProject
	}
	if prev.DisplayMode != next.DisplayMode || prev.DisplayColor != next.DisplayColor {
		s |= stagePlan
	}
	return s
}

func sameRegion(a, b *transcript.Region) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
