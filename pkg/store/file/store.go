// Package file provides a file-based implementation of the store interfaces.
// Schemas and custom types are kept in two JSON files in the data directory;
// every mutation rewrites the affected file atomically.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/praskarnam/DSynth/internal/id"
	"github.com/praskarnam/DSynth/pkg/logging"
	"github.com/praskarnam/DSynth/pkg/schema"
	"github.com/praskarnam/DSynth/pkg/store"
)

// timestampLayout names backup and export files.
const timestampLayout = "20060102_150405"

// FileStore implements store.Store using JSON files.
type FileStore struct {
	cfg     store.Config
	mu      sync.RWMutex
	schemas []*schema.Schema
	types   []*store.CustomType
	log     *slog.Logger
	now     func() time.Time
}

var _ store.Store = (*FileStore)(nil)

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the store's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *FileStore) {
		s.log = logging.OrNop(log)
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new FileStore with the given configuration.
func New(cfg store.Config, opts ...Option) *FileStore {
	if cfg.DataDir == "" {
		cfg.DataDir = store.DefaultDataDir()
	}
	fs := &FileStore{
		cfg: cfg,
		log: logging.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// Open creates the data directory and the data files when missing, then
// loads both files.
func (s *FileStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.cfg.DataDir, 0700); err != nil {
		return err
	}
	for _, name := range []string{store.SchemasFile, store.CustomTypesFile} {
		path := s.path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) && !s.cfg.ReadOnly {
			if err := writeJSON(path, []any{}); err != nil {
				return err
			}
		}
	}
	return s.loadLocked()
}

// Close releases the store. Every mutation is already on disk.
func (s *FileStore) Close() error {
	return nil
}

// DataDir returns the data directory path.
func (s *FileStore) DataDir() string {
	return s.cfg.DataDir
}

// Schemas returns the schema store.
func (s *FileStore) Schemas() store.SchemaStore {
	return &schemaStore{fs: s}
}

// CustomTypes returns the custom type store.
func (s *FileStore) CustomTypes() store.CustomTypeStore {
	return &customTypeStore{fs: s}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.cfg.DataDir, name)
}

func (s *FileStore) loadLocked() error {
	var schemas []*schema.Schema
	if err := readJSON(s.path(store.SchemasFile), &schemas); err != nil {
		return fmt.Errorf("load %s: %w", store.SchemasFile, err)
	}
	types, err := s.readTypes()
	if err != nil {
		return err
	}
	s.schemas = schemas
	s.types = types
	return nil
}

func (s *FileStore) readTypes() ([]*store.CustomType, error) {
	var types []*store.CustomType
	if err := readJSON(s.path(store.CustomTypesFile), &types); err != nil {
		return nil, fmt.Errorf("load %s: %w", store.CustomTypesFile, err)
	}
	return types, nil
}

// ReloadCustomTypes re-reads custom_types.json and replaces the in-memory
// list. On error the current list is kept.
func (s *FileStore) ReloadCustomTypes() ([]*store.CustomType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types, err := s.readTypes()
	if err != nil {
		return nil, err
	}
	s.types = types
	return slices.Clone(nonNil(types)), nil
}

func (s *FileStore) saveSchemasLocked() error {
	if s.cfg.ReadOnly {
		return store.ErrReadOnly
	}
	return writeJSON(s.path(store.SchemasFile), nonNil(s.schemas))
}

func (s *FileStore) saveTypesLocked() error {
	if s.cfg.ReadOnly {
		return store.ErrReadOnly
	}
	return writeJSON(s.path(store.CustomTypesFile), nonNil(s.types))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// readJSON decodes path into v. A missing file leaves v untouched.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// writeJSON writes v as indented JSON using a temp file and rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

// =============================================================================
// Maintenance
// =============================================================================

// Backup copies both data files into dir under timestamped names.
func (s *FileStore) Backup(ctx context.Context, dir string) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := s.snapshotPaths(dir)
	if err != nil {
		return nil, err
	}
	if err := copyFile(s.path(store.SchemasFile), snap.SchemasPath); err != nil {
		return nil, fmt.Errorf("backup schemas: %w", err)
	}
	if err := copyFile(s.path(store.CustomTypesFile), snap.CustomTypesPath); err != nil {
		return nil, fmt.Errorf("backup custom types: %w", err)
	}
	s.log.Info("backup created", "schemas", snap.SchemasPath, "customTypes", snap.CustomTypesPath)
	return snap, nil
}

// Export writes the in-memory data into dir under timestamped names.
func (s *FileStore) Export(ctx context.Context, dir string) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := s.snapshotPaths(dir)
	if err != nil {
		return nil, err
	}
	if err := writeJSON(snap.SchemasPath, nonNil(s.schemas)); err != nil {
		return nil, fmt.Errorf("export schemas: %w", err)
	}
	if err := writeJSON(snap.CustomTypesPath, nonNil(s.types)); err != nil {
		return nil, fmt.Errorf("export custom types: %w", err)
	}
	return snap, nil
}

func (s *FileStore) snapshotPaths(dir string) (*store.Snapshot, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	ts := s.now()
	stamp := ts.Format(timestampLayout)
	return &store.Snapshot{
		SchemasPath:     filepath.Join(dir, "schemas_"+stamp+".json"),
		CustomTypesPath: filepath.Join(dir, "custom_types_"+stamp+".json"),
		Timestamp:       ts,
	}, nil
}

// Restore replaces the data files with the snapshot's files and reloads.
// A snapshot path that is empty or missing leaves that file unchanged.
func (s *FileStore) Restore(ctx context.Context, snap *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ReadOnly {
		return store.ErrReadOnly
	}
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", store.ErrInvalid)
	}

	// Validate both before touching the data directory.
	var schemas []*schema.Schema
	var types []*store.CustomType
	if err := readJSON(snap.SchemasPath, &schemas); err != nil {
		return fmt.Errorf("%w: schemas backup: %v", store.ErrInvalid, err)
	}
	if err := readJSON(snap.CustomTypesPath, &types); err != nil {
		return fmt.Errorf("%w: custom types backup: %v", store.ErrInvalid, err)
	}

	for _, pair := range [][2]string{
		{snap.SchemasPath, s.path(store.SchemasFile)},
		{snap.CustomTypesPath, s.path(store.CustomTypesFile)},
	} {
		if pair[0] == "" {
			continue
		}
		if _, err := os.Stat(pair[0]); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return s.loadLocked()
}

// Clear removes every schema and custom type.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ReadOnly {
		return store.ErrReadOnly
	}
	s.schemas = nil
	s.types = nil
	if err := s.saveSchemasLocked(); err != nil {
		return err
	}
	return s.saveTypesLocked()
}

// copyFile copies src to dst through a temp file and rename.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	tmpFile := dst + ".tmp"
	out, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	if err := os.Rename(tmpFile, dst); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}

// newID issues the ID for a record saved without one.
func newID() string {
	return id.UUID()
}
