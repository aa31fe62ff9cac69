// Package main provides the vibe-structure command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:   "vibe-structure",
		Short: "Project transcript regions onto 3D structures",
		Long: `vibe-structure maps a genomic region through a transcript's exons onto
residue numbering, resolves it against a chain position mapping, and builds the
ordered representation list a structure viewer renders.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile, verbose)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-structure.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	root.PersistentFlags().String("db", "", "Structure catalog database (default: ~/.vibe-structure/structures.duckdb)")
	viper.BindPFlag("db", root.PersistentFlags().Lookup("db"))

	root.AddCommand(newRenderCmd())
	root.AddCommand(newChainsCmd())
	root.AddCommand(newRenderLogCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())

	return root
}

var logger = zap.NewNop()

func initConfig(cfgFile string, verbose bool) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".vibe-structure")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIBE_STRUCTURE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("db", defaultDBPath())
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("load.timeout", "30s")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	l, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = l
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "structures.duckdb"
	}
	return filepath.Join(home, ".vibe-structure", "structures.duckdb")
}
