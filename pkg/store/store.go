// Package store provides persistence for schemas and custom types.
//
// The file backend (package store/file) keeps two JSON documents in the data
// directory, schemas.json and custom_types.json, and supports backup,
// restore, export and clear of both.
//
// The default data directory honors $XDG_DATA_HOME and otherwise uses:
//   - Linux:   ~/.local/share/dsynth
//   - macOS:   ~/Library/Application Support/dsynth
//   - Windows: %LOCALAPPDATA%\dsynth
package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// Common errors
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrInvalid   = errors.New("invalid record")
	ErrReadOnly  = errors.New("store is read-only")
)

// File names inside the data directory.
const (
	SchemasFile     = "schemas.json"
	CustomTypesFile = "custom_types.json"
)

// Config holds store configuration.
type Config struct {
	// DataDir is the directory holding the data files.
	// Defaults to DefaultDataDir().
	DataDir string `json:"dataDir,omitempty" yaml:"dataDir,omitempty"`

	// ReadOnly prevents any write operations.
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// DefaultDataDir returns the per-user data directory for dsynth.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "dsynth")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dsynth", "data")
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "dsynth")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, "dsynth")
		}
		return filepath.Join(home, "AppData", "Local", "dsynth")
	}
	return filepath.Join(home, ".local", "share", "dsynth")
}
