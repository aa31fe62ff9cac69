package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-structure/internal/represent"
)

// WriteRenderLog appends one row per viewer slot of an applied plan using
// the Appender API.
func (s *Store) WriteRenderLog(ctx context.Context, runID uuid.UUID, structureID string, reps []represent.Representation) error {
	if len(reps) == 0 {
		return nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "render_log")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	now := time.Now().UTC()
	for i, r := range reps {
		var color any
		if r.Color != nil {
			color = *r.Color
		}
		if err := appender.AppendRow(
			runID.String(), structureID, int32(i),
			r.Selector, r.Mode, r.Colorer, color, r.Material,
			now,
		); err != nil {
			return fmt.Errorf("append render row: %w", err)
		}
	}

	return appender.Flush()
}

// LookupRenderLog returns the plan recorded for a run, in slot order.
func (s *Store) LookupRenderLog(ctx context.Context, runID uuid.UUID) ([]represent.Representation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT selector, mode, colorer, color, material
		FROM render_log WHERE run_id = ? ORDER BY slot`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("query render log: %w", err)
	}
	defer rows.Close()

	var reps []represent.Representation
	for rows.Next() {
		var r represent.Representation
		if err := rows.Scan(&r.Selector, &r.Mode, &r.Colorer, &r.Color, &r.Material); err != nil {
			return nil, fmt.Errorf("scan render row: %w", err)
		}
		reps = append(reps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate render log: %w", err)
	}
	return reps, nil
}

// ClearRenderLog removes all recorded plans.
func (s *Store) ClearRenderLog(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM render_log")
	return err
}

// RenderRun summarizes one recorded plan.
type RenderRun struct {
	RunID       string
	StructureID string
	Slots       int
	RenderedAt  time.Time
}

// RenderRuns lists recorded plans, oldest first.
func (s *Store) RenderRuns(ctx context.Context) ([]RenderRun, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, structure_id, count(*), min(rendered_at)
		FROM render_log GROUP BY run_id, structure_id ORDER BY min(rendered_at), run_id`)
	if err != nil {
		return nil, fmt.Errorf("query render runs: %w", err)
	}
	defer rows.Close()

	var runs []RenderRun
	for rows.Next() {
		var r RenderRun
		if err := rows.Scan(&r.RunID, &r.StructureID, &r.Slots, &r.RenderedAt); err != nil {
			return nil, fmt.Errorf("scan render run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
