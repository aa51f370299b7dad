package main

import (
	"fmt"
	"io"
	"os"

	"github.com/matsen/blast/internal/config"
	"github.com/matsen/blast/internal/storage"
	"github.com/spf13/cobra"
)

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	ConfigFile string            `json:"config_file"`
	DB         config.DBLocation `json:"db"`
	Backend    string            `json:"backend"`
	Exists     bool              `json:"exists"`
	Entries    int               `json:"entries"`
	CopyOnGet  bool              `json:"copy_on_get"`
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the config file location, the database path and where it came from
(flag, env, config or default), the storage backend and the entry count.

Config file keys (YAML):
  db_path      Path to the database (~ is expanded)
  copy_on_get  Copy values to the clipboard on get (default true)`,
		Args: cobra.NoArgs,
		RunE: a.runConfig,
	}
}

func (a *app) runConfig(cmd *cobra.Command, args []string) error {
	loc := a.dbLocation()
	resp := ConfigResponse{
		ConfigFile: config.GlobalConfigPath(),
		DB:         loc,
		Backend:    backendName(storage.BackendFor(loc.Path)),
		CopyOnGet:  a.cfg.ShouldCopyOnGet(),
	}

	// Count entries straight from the backend: no store is opened, so
	// nothing is flushed and a missing database is not created.
	if _, err := os.Stat(loc.Path); err == nil {
		resp.Exists = true
		entries, err := storage.BackendFor(loc.Path).Load()
		if err != nil {
			return exitErrorf(ExitError, "loading %s: %v", loc.Path, err)
		}
		resp.Entries = len(entries)
	}

	return a.printResult(cmd, resp, func(w io.Writer) {
		fmt.Fprintf(w, "config file:  %s\n", resp.ConfigFile)
		fmt.Fprintf(w, "database:     %s (%s)\n", resp.DB.Path, resp.DB.Source)
		fmt.Fprintf(w, "backend:      %s\n", resp.Backend)
		if resp.Exists {
			fmt.Fprintf(w, "entries:      %d\n", resp.Entries)
		} else {
			fmt.Fprintln(w, "entries:      0 (not created yet)")
		}
		fmt.Fprintf(w, "copy on get:  %t\n", resp.CopyOnGet)
	})
}

// backendName names a storage backend for display.
func backendName(b storage.Backend) string {
	switch b.(type) {
	case *storage.SQLiteBackend:
		return "sqlite"
	default:
		return "json"
	}
}
