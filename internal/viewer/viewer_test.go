package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-structure/internal/represent"
)

func rep(sel string) represent.Representation {
	return represent.Representation{Selector: sel, Mode: "CA", Colorer: "SS", Material: "SF"}
}

// opLog wraps Memory and records the order of slot operations.
type opLog struct {
	*Memory
	ops []string
}

func (o *opLog) RemoveSlot(i int) {
	o.ops = append(o.ops, "remove")
	o.Memory.RemoveSlot(i)
}

func (o *opLog) ReplaceSlot(i int, r represent.Representation) {
	o.ops = append(o.ops, "replace:"+r.Selector)
	o.Memory.ReplaceSlot(i, r)
}

func (o *opLog) AppendSlot(r represent.Representation) {
	o.ops = append(o.ops, "append:"+r.Selector)
	o.Memory.AppendSlot(r)
}

func TestApply_ReplacesAllSlots(t *testing.T) {
	m := NewMemory(nil)
	Apply(m, []represent.Representation{rep("a"), rep("b"), rep("c")})
	Apply(m, []represent.Representation{rep("x"), rep("y")})

	assert.Equal(t, []represent.Representation{rep("x"), rep("y")}, m.Slots())
}

func TestApply_OperationOrder(t *testing.T) {
	v := &opLog{Memory: NewMemory(nil)}
	v.AppendSlot(rep("old1"))
	v.AppendSlot(rep("old2"))
	v.ops = nil

	Apply(v, []represent.Representation{rep("n0"), rep("n1")})
	assert.Equal(t, []string{"remove", "remove", "replace:n0", "append:n1"}, v.ops)
}

func TestApply_EmptyPlanKeepsSlotZero(t *testing.T) {
	m := NewMemory(nil)
	Apply(m, []represent.Representation{rep("a"), rep("b")})
	Apply(m, nil)

	assert.Equal(t, []represent.Representation{rep("a")}, m.Slots())
	assert.Equal(t, 1, m.SlotCount())
}

func TestApply_NeverZeroSlots(t *testing.T) {
	m := NewMemory(nil)
	plans := [][]represent.Representation{
		nil,
		{rep("a")},
		{rep("a"), rep("b"), rep("c")},
		nil,
		{rep("z")},
	}
	for _, p := range plans {
		Apply(m, p)
		assert.GreaterOrEqual(t, m.SlotCount(), 1)
	}
}

func TestApply_Idempotent(t *testing.T) {
	m := NewMemory(nil)
	plan := []represent.Representation{rep("a"), rep("b")}
	Apply(m, plan)
	first := m.Slots()
	Apply(m, plan)
	assert.Equal(t, first, m.Slots())
}

func TestMemory_RemoveLastSlotIsNoop(t *testing.T) {
	m := NewMemory(nil)
	m.RemoveSlot(0)
	assert.Equal(t, []represent.Representation{DefaultRepresentation}, m.Slots())
}

func TestMemory_LoadUnload(t *testing.T) {
	fail := errors.New("not found")
	m := NewMemory(func(_ context.Context, id string) error {
		if id == "missing" {
			return fail
		}
		return nil
	})

	require.NoError(t, m.Load(context.Background(), "1ABC"))
	assert.Equal(t, "1ABC", m.Loaded())

	err := m.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, "1ABC", m.Loaded(), "failed load keeps prior structure")
	assert.Equal(t, 1, m.LoadCount())

	m.AppendSlot(rep("a"))
	m.Unload()
	assert.Equal(t, "", m.Loaded())
	assert.Equal(t, 1, m.SlotCount())

	m.Resize()
	assert.Equal(t, 1, m.ResizeCount())
}

func TestMemory_LateFetchDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := NewMemory(func(_ context.Context, id string) error {
		if id == "OLD" {
			close(started)
			<-release
		}
		return nil
	})
	ctx := context.Background()

	done := make(chan error)
	go func() { done <- m.Load(ctx, "OLD") }()
	<-started

	require.NoError(t, m.Load(ctx, "NEW"))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, "NEW", m.Loaded())
	assert.Equal(t, 1, m.LoadCount())
}

func TestMemory_LateFetchAfterUnloadDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := NewMemory(func(context.Context, string) error {
		close(started)
		<-release
		return nil
	})

	done := make(chan error)
	go func() { done <- m.Load(context.Background(), "1ABC") }()
	<-started

	m.Unload()
	close(release)
	require.NoError(t, <-done)

	assert.Empty(t, m.Loaded())
	assert.Zero(t, m.LoadCount())
}
