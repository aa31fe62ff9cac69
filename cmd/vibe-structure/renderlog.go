package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-structure/internal/duckdb"
	"github.com/inodb/vibe-structure/internal/output"
)

func newRenderLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render-log",
		Short: "Inspect or clear recorded plans",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := duckdb.Open(viper.GetString("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RenderRuns(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.RunID, r.StructureID, r.Slots, r.RenderedAt.Format(time.RFC3339))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the plan recorded for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}

			store, err := duckdb.Open(viper.GetString("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			reps, err := store.LookupRenderLog(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if len(reps) == 0 {
				return fmt.Errorf("no plan recorded for run %s", runID)
			}

			tw := output.NewTabWriter(cmd.OutOrStdout())
			if err := tw.WriteHeader(); err != nil {
				return err
			}
			if err := tw.WritePlan(reps); err != nil {
				return err
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := duckdb.Open(viper.GetString("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ClearRenderLog(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Render log cleared")
			return nil
		},
	})

	return cmd
}
