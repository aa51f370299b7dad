package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultDBFile is the database file name placed in the home directory.
	DefaultDBFile = ".blast_db.json"
	// EnvDBPath overrides the configured database path.
	EnvDBPath = "BLAST_DB"
)

// Source records where a resolved database path came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// DBLocation is a resolved database path.
type DBLocation struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
}

// LoadEnv loads a .env file from the working directory if present.
// A missing or unreadable .env is ignored.
func LoadEnv() {
	_ = godotenv.Load()
}

// DefaultDBPath returns ~/.blast_db.json, or the bare file name if the home
// directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDBFile
	}
	return filepath.Join(home, DefaultDBFile)
}

// ResolveDBPath picks the database path. Precedence: flagValue, then the
// BLAST_DB environment variable, then db_path from cfg, then the default.
func ResolveDBPath(flagValue string, cfg *GlobalConfig) DBLocation {
	if flagValue != "" {
		return DBLocation{Path: ExpandPath(flagValue), Source: SourceFlag}
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return DBLocation{Path: ExpandPath(env), Source: SourceEnv}
	}
	if cfg != nil && cfg.DBPath != "" {
		return DBLocation{Path: cfg.DBPath, Source: SourceConfig}
	}
	return DBLocation{Path: DefaultDBPath(), Source: SourceDefault}
}

// ExpandPath expands a leading ~ or ~/ to the user's home directory.
// Other paths, including ~user forms, are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
