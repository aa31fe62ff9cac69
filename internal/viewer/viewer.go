// Package viewer reconciles representation plans onto a stateful structure
// viewer that only supports indexed slot operations.
package viewer

import (
	"context"

	"github.com/inodb/vibe-structure/internal/represent"
)

// Viewer is the slot API of a structure viewer. A viewer never holds zero
// representations: removing the last remaining slot has no effect.
type Viewer interface {
	SlotCount() int
	ReplaceSlot(index int, rep represent.Representation)
	AppendSlot(rep represent.Representation)
	RemoveSlot(index int)
}

// Structure is a Viewer that can also load and unload a structure. Only the
// most recent Load or Unload call may determine the loaded structure; a load
// that finishes after a newer call must leave the viewer untouched.
type Structure interface {
	Viewer
	Load(ctx context.Context, id string) error
	Unload()
	Resize()
}

// Apply replaces the viewer's representations with reps.
//
// Existing slots are removed from the top down to index 1. Slot 0 is then
// overwritten with reps[0] and the rest are appended in order. With an empty
// plan slot 0 keeps whatever it showed before.
func Apply(v Viewer, reps []represent.Representation) {
	for i := v.SlotCount() - 1; i > 0; i-- {
		v.RemoveSlot(i)
	}
	for i, rep := range reps {
		if i == 0 {
			v.ReplaceSlot(0, rep)
			continue
		}
		v.AppendSlot(rep)
	}
}
