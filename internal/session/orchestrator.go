package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/inodb/vibe-structure/internal/interval"
	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/structure"
	"github.com/inodb/vibe-structure/internal/transcript"
	"github.com/inodb/vibe-structure/internal/viewer"
)

// State is the load state of the orchestrator.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	}
	return "unknown"
}

// Snapshot is a copy of the orchestrator's state.
type Snapshot struct {
	State           State
	CurrentID       string
	PendingID       string
	Highlight       *interval.Range
	ChainHighlights []structure.ChainHighlight
	MappingErr      error
	Plan            []represent.Representation
}

// Orchestrator owns a structure viewer and keeps it in sync with Inputs.
type Orchestrator struct {
	viewer      viewer.Structure
	logger      *zap.Logger
	observer    Observer
	chains      ChainSource
	loadTimeout time.Duration
	loads       singleflight.Group

	// run serializes pipeline runs so slot reconciliation never interleaves.
	run sync.Mutex

	mu              sync.Mutex
	started         bool
	inputs          Inputs
	state           State
	currentID       string
	pendingID       string
	catalogChains   []represent.Chain
	highlight       *interval.Range
	chainHighlights []structure.ChainHighlight
	mappingErr      error
	plan            []represent.Representation
}

// New creates an idle orchestrator driving v.
func New(v viewer.Structure) *Orchestrator {
	return &Orchestrator{
		viewer:   v,
		logger:   zap.NewNop(),
		observer: NopObserver{},
	}
}

// SetLogger sets the logger for load and mapping events.
func (o *Orchestrator) SetLogger(l *zap.Logger) {
	o.logger = l
}

// SetObserver sets the receiver of pipeline events.
func (o *Orchestrator) SetObserver(obs Observer) {
	if obs == nil {
		obs = NopObserver{}
	}
	o.observer = obs
}

// SetChainSource configures where chains come from when Inputs.Chains is empty.
func (o *Orchestrator) SetChainSource(cs ChainSource) {
	o.chains = cs
}

// SetLoadTimeout bounds every structure load. Zero disables the limit.
func (o *Orchestrator) SetLoadTimeout(d time.Duration) {
	o.loadTimeout = d
}

// Update applies a new set of inputs, running only the stages the change
// invalidates. The first call runs everything. The returned error is a
// *LoadError when a structure load failed; the viewer then keeps its
// previous content.
func (o *Orchestrator) Update(ctx context.Context, in Inputs) error {
	o.mu.Lock()
	st := stageAll
	if o.started {
		st = invalidated(o.inputs, in)
	}
	o.started = true
	o.inputs = in
	o.mu.Unlock()

	switch {
	case st&stageLoad != 0:
		return o.SetStructure(ctx, in.StructureID)
	case st&stageProject != 0:
		o.Recompute()
	case st&stagePlan != 0:
		o.Replan()
	}
	return nil
}

// SetStructure loads id, or unloads the viewer when id is empty. Concurrent
// requests for the same id share one load. A load that completes after a
// different id was requested is discarded.
func (o *Orchestrator) SetStructure(ctx context.Context, id string) error {
	o.mu.Lock()
	o.inputs.StructureID = id
	if id == "" {
		o.state = StateIdle
		o.currentID = ""
		o.pendingID = ""
		o.catalogChains = nil
		o.highlight = nil
		o.chainHighlights = nil
		o.mappingErr = nil
		o.plan = nil
		o.mu.Unlock()

		o.run.Lock()
		o.viewer.Unload()
		o.run.Unlock()
		return nil
	}
	if o.state == StateLoaded && o.currentID == id {
		o.mu.Unlock()
		o.Recompute()
		return nil
	}
	o.state = StateLoading
	o.pendingID = id
	o.mu.Unlock()

	err := o.load(ctx, id)

	o.mu.Lock()
	if o.pendingID != id {
		// Superseded, or already resolved by a caller sharing this load.
		o.mu.Unlock()
		if err != nil {
			return &LoadError{ID: id, Err: err}
		}
		return nil
	}
	o.pendingID = ""
	if err != nil {
		// Selecting the failed identifier again must count as a change.
		if o.inputs.StructureID == id {
			o.inputs.StructureID = o.currentID
		}
		if o.currentID != "" {
			o.state = StateLoaded
		} else {
			o.state = StateIdle
		}
		o.mu.Unlock()

		le := &LoadError{ID: id, Err: err}
		o.logger.Warn("structure load failed", zap.String("id", id), zap.Error(err))
		o.observer.StructureLoadFailed(le)
		return le
	}
	o.state = StateLoaded
	o.currentID = id
	o.catalogChains = nil
	o.mu.Unlock()

	o.logger.Info("structure loaded", zap.String("id", id))
	o.observer.StructureLoaded(id)
	o.fetchCatalogChains(ctx, id)
	o.Recompute()
	return nil
}

func (o *Orchestrator) load(ctx context.Context, id string) error {
	_, err, _ := o.loads.Do(id, func() (any, error) {
		lctx := ctx
		if o.loadTimeout > 0 {
			var cancel context.CancelFunc
			lctx, cancel = context.WithTimeout(ctx, o.loadTimeout)
			defer cancel()
		}
		return nil, o.viewer.Load(lctx, id)
	})
	return err
}

func (o *Orchestrator) fetchCatalogChains(ctx context.Context, id string) {
	if o.chains == nil {
		return
	}
	chains, err := o.chains.LookupChains(ctx, id)
	if err != nil {
		o.logger.Warn("chain lookup failed", zap.String("id", id), zap.Error(err))
		return
	}
	o.mu.Lock()
	if o.currentID == id {
		o.catalogChains = chains
	}
	o.mu.Unlock()
}

// Recompute reprojects the highlight and chain highlights from the current
// inputs, then replans. Malformed mapping entries are skipped and reported
// to the observer.
func (o *Orchestrator) Recompute() {
	o.run.Lock()
	defer o.run.Unlock()

	o.mu.Lock()
	in := o.inputs
	id := o.currentID
	o.mu.Unlock()

	var hl *interval.Range
	if h, ok := transcript.Project(in.Transcript, in.Region); ok {
		hl = &h
	}
	chs, err := structure.ResolveMapping(in.Position, hl)

	o.mu.Lock()
	o.highlight = hl
	o.chainHighlights = chs
	o.mappingErr = err
	o.mu.Unlock()

	if err != nil {
		o.logger.Warn("skipped malformed position mapping entries", zap.String("id", id), zap.Error(err))
		o.observer.MappingRejected(id, err)
	}
	o.replanLocked()
}

// Replan rebuilds the representation list from the stored chain highlights
// and applies it. Nothing is applied unless a structure is loaded; a run
// requested while a load is pending happens when that load completes.
func (o *Orchestrator) Replan() {
	o.run.Lock()
	defer o.run.Unlock()
	o.replanLocked()
}

// replanLocked requires o.run.
func (o *Orchestrator) replanLocked() {
	o.mu.Lock()
	if o.state != StateLoaded {
		o.mu.Unlock()
		return
	}
	in := o.inputs
	chains := in.Chains
	if len(chains) == 0 {
		chains = o.catalogChains
	}
	reps := represent.Plan(represent.Options{
		Chains:       chains,
		ChainFilter:  in.ChainFilter,
		DisplayMode:  in.DisplayMode,
		DisplayColor: in.DisplayColor,
		Highlights:   o.chainHighlights,
	})
	id := o.currentID
	o.plan = reps
	o.mu.Unlock()

	viewer.Apply(o.viewer, reps)
	o.observer.Rendered(id, reps)
}

// Resize forwards a resize notification to the viewer.
func (o *Orchestrator) Resize() {
	o.run.Lock()
	defer o.run.Unlock()
	o.viewer.Resize()
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Snapshot{
		State:           o.state,
		CurrentID:       o.currentID,
		PendingID:       o.pendingID,
		ChainHighlights: append([]structure.ChainHighlight(nil), o.chainHighlights...),
		MappingErr:      o.mappingErr,
		Plan:            append([]represent.Representation(nil), o.plan...),
	}
	if o.highlight != nil {
		h := *o.highlight
		s.Highlight = &h
	}
	return s
}
