package viewer

import (
	"context"
	"fmt"
	"sync"

	"github.com/inodb/vibe-structure/internal/represent"
)

// DefaultRepresentation is the slot a fresh or unloaded viewer shows.
var DefaultRepresentation = represent.Representation{
	Selector: "all",
	Mode:     represent.ModeCartoon,
	Colorer:  represent.ColorerSecondary,
	Material: represent.MaterialSoft,
}

// FetchFunc retrieves a structure by identifier. It backs Memory.Load.
type FetchFunc func(ctx context.Context, id string) error

// Memory is an in-process Structure that records slot contents instead of
// rendering them.
type Memory struct {
	mu      sync.Mutex
	fetch   FetchFunc
	slots   []represent.Representation
	loaded  string
	gen     uint64
	loads   int
	resizes int
}

// NewMemory creates a viewer holding the default representation. A nil
// fetch accepts every identifier.
func NewMemory(fetch FetchFunc) *Memory {
	return &Memory{
		fetch: fetch,
		slots: []represent.Representation{DefaultRepresentation},
	}
}

// Load fetches the structure and makes it current. A fetch that completes
// after a later Load or Unload call is dropped.
func (m *Memory) Load(ctx context.Context, id string) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	if m.fetch != nil {
		if err := m.fetch(ctx, id); err != nil {
			return fmt.Errorf("load %s: %w", id, err)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return nil
	}
	m.loaded = id
	m.loads++
	return nil
}

// Unload drops the current structure and resets the slots.
func (m *Memory) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.loaded = ""
	m.slots = []represent.Representation{DefaultRepresentation}
}

// Resize records a resize notification.
func (m *Memory) Resize() {
	m.mu.Lock()
	m.resizes++
	m.mu.Unlock()
}

func (m *Memory) SlotCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

func (m *Memory) ReplaceSlot(index int, rep represent.Representation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.slots) {
		return
	}
	m.slots[index] = rep
}

func (m *Memory) AppendSlot(rep represent.Representation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, rep)
}

func (m *Memory) RemoveSlot(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.slots) <= 1 || index < 0 || index >= len(m.slots) {
		return
	}
	m.slots = append(m.slots[:index], m.slots[index+1:]...)
}

// Slots returns a copy of the current slot contents.
func (m *Memory) Slots() []represent.Representation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]represent.Representation(nil), m.slots...)
}

// Loaded returns the identifier of the current structure, or "".
func (m *Memory) Loaded() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// LoadCount returns the number of loads that became current.
func (m *Memory) LoadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// ResizeCount returns the number of resize notifications received.
func (m *Memory) ResizeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resizes
}
