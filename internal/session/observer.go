package session

import (
	"context"

	"github.com/inodb/vibe-structure/internal/represent"
)

// Observer receives pipeline events. Calls are made synchronously from the
// goroutine running the pipeline.
type Observer interface {
	StructureLoaded(id string)
	StructureLoadFailed(err *LoadError)
	MappingRejected(id string, err error)
	Rendered(id string, reps []represent.Representation)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) StructureLoaded(string)                     {}
func (NopObserver) StructureLoadFailed(*LoadError)              {}
func (NopObserver) MappingRejected(string, error)               {}
func (NopObserver) Rendered(string, []represent.Representation) {}

// ChainSource supplies the chain list of a structure when the caller does
// not provide one.
type ChainSource interface {
	LookupChains(ctx context.Context, structureID string) ([]represent.Chain, error)
}
