package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions that select the SQLite backend.
var sqliteExtensions = []string{".db", ".sqlite", ".sqlite3"}

// BackendFor returns the backend matching path's extension.
// SQLite files end in .db, .sqlite or .sqlite3; everything else is JSON.
func BackendFor(path string) Backend {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range sqliteExtensions {
		if ext == e {
			return NewSQLiteBackend(path)
		}
	}
	return NewJSONBackend(path)
}

// JSONBackend stores the mapping as a single JSON object.
type JSONBackend struct {
	path string
}

// NewJSONBackend returns a JSON backend for path.
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

// Path returns the JSON file path.
func (b *JSONBackend) Path() string {
	return b.path
}

// Load reads the JSON object. A missing or blank file is an empty mapping.
func (b *JSONBackend) Load() (map[string]string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	if entries == nil {
		// The file held a JSON null.
		entries = map[string]string{}
	}
	return entries, nil
}

// Save writes the mapping atomically.
// Uses temp file + rename so a failed write leaves the old file intact.
func (b *JSONBackend) Save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// Create temp file in same directory for atomic rename (mode 0600)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing entries: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
