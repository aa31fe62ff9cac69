package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-structure/internal/duckdb"
	"github.com/inodb/vibe-structure/internal/output"
	"github.com/inodb/vibe-structure/internal/represent"
	"github.com/inodb/vibe-structure/internal/session"
	"github.com/inodb/vibe-structure/internal/viewer"
)

func newRenderCmd() *cobra.Command {
	var (
		profileDir string
		noLog      bool
	)

	cmd := &cobra.Command{
		Use:   "render <session-file>",
		Short: "Compute and apply the representation plan for a session",
		Long: `Load the session's structure from the chain catalog, project the region
through the transcript and position mapping, and print the chain highlights and
the representation plan applied to the viewer. Each applied plan is recorded in
the catalog's render log.`,
		Example: `  vibe-structure render session.yaml
  vibe-structure render --db /data/structures.duckdb session.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileDir != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.Quiet).Stop()
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], !noLog)
		},
	}

	cmd.Flags().StringVar(&profileDir, "profile", "", "Write a CPU profile to this directory")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "Do not record the plan in the render log")

	return cmd
}

func runRender(ctx context.Context, w io.Writer, sessionPath string, record bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	in, err := loadSession(sessionPath)
	if err != nil {
		return err
	}

	store, err := duckdb.Open(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer store.Close()

	rl := &renderLog{ctx: ctx, store: store, record: record}
	o := session.New(viewer.NewMemory(store.Fetch))
	o.SetLogger(logger)
	o.SetObserver(rl)
	o.SetChainSource(store)
	o.SetLoadTimeout(viper.GetDuration("load.timeout"))

	if err := o.Update(ctx, in); err != nil {
		return err
	}
	if err := rl.Err(); err != nil {
		return err
	}

	snap := o.Snapshot()
	if snap.Highlight != nil {
		fmt.Fprintf(w, "# structure %s, residues %d-%d\n", snap.CurrentID, snap.Highlight.Start, snap.Highlight.End)
	} else {
		fmt.Fprintf(w, "# structure %s, no highlight\n", snap.CurrentID)
	}
	if err := output.WriteHighlights(w, snap.ChainHighlights); err != nil {
		return err
	}

	tw := output.NewTabWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	if err := tw.WritePlan(snap.Plan); err != nil {
		return err
	}
	return tw.Flush()
}

// renderLog records applied plans in the catalog.
type renderLog struct {
	session.NopObserver

	ctx    context.Context
	store  *duckdb.Store
	record bool

	mu  sync.Mutex
	err error
}

func (r *renderLog) Rendered(id string, reps []represent.Representation) {
	if !r.record {
		return
	}
	runID := uuid.New()
	if err := r.store.WriteRenderLog(r.ctx, runID, id, reps); err != nil {
		r.mu.Lock()
		r.err = fmt.Errorf("record render log: %w", err)
		r.mu.Unlock()
		return
	}
	logger.Debug("plan recorded", zap.String("run", runID.String()), zap.String("id", id), zap.Int("slots", len(reps)))
}

func (r *renderLog) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
