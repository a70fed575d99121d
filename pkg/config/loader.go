package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/praskarnam/DSynth/pkg/registry"
	"github.com/praskarnam/DSynth/pkg/schema"
)

// Common errors for configuration loading/saving.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// readFile reads a JSON or YAML file and reports whether it is YAML
// (.yaml or .yml extension).
func readFile(path string) (data []byte, isYAML bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, false, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, false, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, false, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, false, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, false, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	isYAML = ext == ".yaml" || ext == ".yml"
	if !isYAML && !json.Valid(data) {
		return nil, false, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	return data, isYAML, nil
}

func decode(data []byte, isYAML bool, v any) error {
	if isYAML {
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// LoadFromFile reads a Config from a JSON or YAML file. Keys missing from
// the file keep their defaults. The format is picked by extension (.yaml,
// .yml for YAML, otherwise JSON).
func LoadFromFile(path string) (*Config, error) {
	data, isYAML, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseJSON parses JSON bytes over DefaultConfig and validates the result.
func ParseJSON(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decode(data, false, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// ParseYAML parses YAML bytes over DefaultConfig and validates the result.
func ParseYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decode(data, true, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes cfg using atomic rename. The format is determined by
// file extension. Parent directories are created.
func SaveToFile(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	ext := strings.ToLower(filepath.Ext(path))
	var data []byte
	var err error
	if ext == ".yaml" || ext == ".yml" {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// LoadSchemaFile reads a schema definition from a JSON or YAML file.
func LoadSchemaFile(path string) (*schema.Schema, error) {
	data, isYAML, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var s schema.Schema
	if err := decode(data, isYAML, &s); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(s.Fields) == 0 && s.SchemaContent != "" {
		elements, err := schema.ExtractFields(s.SchemaContent, s.SchemaType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.Fields = schema.FieldsFromElements(elements)
	}
	return &s, nil
}

// LoadTypesFile reads custom type definitions from a JSON or YAML file
// holding a list of {name, expression} objects.
func LoadTypesFile(path string) ([]registry.Definition, error) {
	data, isYAML, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var defs []registry.Definition
	if err := decode(data, isYAML, &defs); err != nil {
		return nil, err
	}
	for i, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("%w: %s: type %d has no name", ErrInvalidConfig, path, i)
		}
	}
	return defs, nil
}
