package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-structure/internal/duckdb"
)

func newChainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Manage the structure chain catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.tsv>",
		Short: "Import chains from a structure_id<TAB>chain_id[<TAB>description] file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open chain catalog: %w", err)
			}
			defer f.Close()

			store, err := duckdb.Open(viper.GetString("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.ImportChains(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d structures into %s\n", n, viper.GetString("db"))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list [structure-id]",
		Short: "List catalogued structures, or the chains of one structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := duckdb.Open(viper.GetString("db"))
			if err != nil {
				return err
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				ids, err := store.Structures(cmd.Context())
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
				return nil
			}

			chains, err := store.LookupChains(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, c := range chains {
				fmt.Fprintf(w, "%s\t%s\n", c.ChainID, c.Description)
			}
			return nil
		},
	})

	return cmd
}
