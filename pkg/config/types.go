package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/praskarnam/DSynth/pkg/logging"
)

// Defaults applied by DefaultConfig.
const (
	DefaultDataDir  = "data"
	DefaultListen   = "127.0.0.1:8000"
	DefaultMaxCount = 10000
)

// Config is the dsynth runtime configuration.
type Config struct {
	// DataDir holds schemas.json, custom_types.json and backups.
	DataDir string `json:"dataDir" yaml:"dataDir"`

	// Listen is the HTTP API address for `dsynth serve`.
	Listen string `json:"listen" yaml:"listen"`

	Log       LogConfig       `json:"log" yaml:"log"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`

	// Watch reloads custom types when custom_types.json changes on disk.
	Watch bool `json:"watch" yaml:"watch"`
}

// LogConfig selects the log level, output format and optional log file.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`

	// File, when set, also receives every record as JSON.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// GeneratorConfig tunes the generation engine.
type GeneratorConfig struct {
	// Workers bounds concurrent record generation. 0 selects GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`

	// Seed makes every generation deterministic when set.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// MaxCount caps the records returned by one request.
	MaxCount int `json:"maxCount" yaml:"maxCount"`
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Listen:  DefaultListen,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Generator: GeneratorConfig{
			MaxCount: DefaultMaxCount,
		},
	}
}

// LoggingConfig converts the log section for logging.New.
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Log.Level)
	lc.Format = logging.ParseFormat(c.Log.Format)
	return lc
}

// Validate checks field ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("dataDir is required"))
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		errs = append(errs, fmt.Errorf("listen %q: %w", c.Listen, err))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}
	if c.Generator.Workers < 0 {
		errs = append(errs, fmt.Errorf("generator.workers must be >= 0, got %d", c.Generator.Workers))
	}
	if c.Generator.MaxCount < 1 {
		errs = append(errs, fmt.Errorf("generator.maxCount must be >= 1, got %d", c.Generator.MaxCount))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
