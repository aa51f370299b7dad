// Package main provides the blast CLI entry point.
package main

import (
	"os"

	"github.com/matsen/blast/internal/config"
	"github.com/matsen/blast/internal/logger"
	"github.com/matsen/blast/internal/platform"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// app holds the state shared by all commands of one invocation.
type app struct {
	platform platform.Platform
	cfg      *config.GlobalConfig

	// Global flags
	dbFlag     string
	jsonOutput bool
	verbose    bool
}

func newApp(p platform.Platform) *app {
	return &app{platform: p}
}

func main() {
	a := newApp(platform.Detect())
	os.Exit(a.execute(a.newRootCmd()))
}

// execute runs root and returns the process exit code.
func (a *app) execute(root *cobra.Command) int {
	err := root.Execute()
	if err != nil {
		// Print the error since we have SilenceErrors: true
		a.printError(root, err.Error())
	}
	return exitCode(err)
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blast",
		Short: "Your command line key-value store",
		Long: `blast stores short text values under namespaced keys.

Keys are one word or two words joined by a dot (<word1>[.<word2>]).
Words consist of letters, numbers and underscores. The first word of a
dotted key is its namespace: "list work" shows every key in "work".

The database defaults to ~/.blast_db.json. Override it with --db, the
BLAST_DB environment variable (also read from .env), or db_path in
~/.config/blast/config.yml. Paths ending in .db or .sqlite use SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetVerbose(a.verbose)
			config.LoadEnv()

			cfg, err := config.LoadGlobalConfig()
			if err != nil {
				return withExitCode(ExitConfigError, err)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dbFlag, "db", "", "Path to the database file")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output JSON instead of plain text")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		a.newGetCmd(),
		a.newEchoCmd(),
		a.newSetCmd(),
		a.newDeleteCmd(),
		a.newListCmd(),
		a.newClearCmd(),
		a.newOpenCmd(),
		a.newMoveCmd(),
		a.newConfigCmd(),
	)
	return root
}

// dbLocation resolves the database path for this invocation.
func (a *app) dbLocation() config.DBLocation {
	return config.ResolveDBPath(a.dbFlag, a.cfg)
}
