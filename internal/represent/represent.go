// Package represent builds the ordered list of viewer representations for a
// structure: one baseline pass per chain, highlight overlays, and a final
// heteroatom pass.
package represent

import (
	"fmt"
	"strings"

	"github.com/inodb/vibe-structure/internal/structure"
)

// Display modes.
const (
	ModeCartoon   = "CA"
	ModeBallStick = "BS"
)

// Colorers.
const (
	ColorerSecondary = "SS"
	ColorerUniform   = "UN"
	ColorerElement   = "EL"
)

// Materials.
const (
	MaterialSoft  = "SF" // selected chains
	MaterialGlass = "GL" // everything else
)

// HeteroSelector selects ligands and other heteroatoms, excluding solvent.
const HeteroSelector = "hetatm and not water"

// Representation is one drawing pass of the viewer.
//
// A nil Color leaves the colorer's own palette in place; a non-nil empty
// string is an explicit override.
type Representation struct {
	Selector string  `json:"selector"`
	Mode     string  `json:"mode"`
	Colorer  string  `json:"colorer"`
	Color    *string `json:"color"`
	Material string  `json:"material"`
}

// Chain is a polymer chain of the loaded structure. Description is carried
// for callers and ignored by the planner.
type Chain struct {
	ChainID     string `json:"chainId" mapstructure:"chainId"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// Options are the inputs of Plan.
type Options struct {
	Chains       []Chain
	ChainFilter  string // "", "all" (any case) or a chain ID
	DisplayMode  string // overrides every pass's mode when set
	DisplayColor string // overrides every pass's colorer when set
	Highlights   []structure.ChainHighlight
}

// ChainSelected reports whether filter selects chainID.
func ChainSelected(filter, chainID string) bool {
	return filter == "" || strings.EqualFold(filter, "all") || filter == chainID
}

// Plan builds the representation list. The order is significant: later
// passes draw over earlier ones, so chain baselines come first, then
// highlight overlays grouped by chain, then the heteroatom pass.
// An empty chain list yields an empty plan.
func Plan(o Options) []Representation {
	if len(o.Chains) == 0 {
		return nil
	}

	material := func(c Chain) string {
		if ChainSelected(o.ChainFilter, c.ChainID) {
			return MaterialSoft
		}
		return MaterialGlass
	}

	reps := make([]Representation, 0, len(o.Chains)+len(o.Highlights)+1)
	for _, c := range o.Chains {
		reps = append(reps, Representation{
			Selector: "chain " + c.ChainID,
			Mode:     or(o.DisplayMode, ModeCartoon),
			Colorer:  or(o.DisplayColor, ColorerSecondary),
			Material: material(c),
		})
	}

	if len(o.Highlights) > 0 {
		for _, c := range o.Chains {
			for _, h := range o.Highlights {
				if h.ChainID != c.ChainID {
					continue
				}
				empty := ""
				reps = append(reps, Representation{
					Selector: fmt.Sprintf("chain %s and sequence %d:%d", c.ChainID, h.Start, h.End),
					Mode:     or(o.DisplayMode, ModeCartoon),
					Colorer:  or(o.DisplayColor, ColorerUniform),
					Color:    &empty,
					Material: material(c),
				})
			}
		}
	}

	reps = append(reps, Representation{
		Selector: HeteroSelector,
		Mode:     or(o.DisplayMode, ModeBallStick),
		Colorer:  or(o.DisplayColor, ColorerElement),
		Material: MaterialSoft,
	})
	return reps
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
