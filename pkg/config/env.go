package config

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig    = "DSYNTH_CONFIG"
	EnvDataDir   = "DSYNTH_DATA_DIR"
	EnvListen    = "DSYNTH_LISTEN"
	EnvLogLevel  = "DSYNTH_LOG_LEVEL"
	EnvLogFormat = "DSYNTH_LOG_FORMAT"
	EnvLogFile   = "DSYNTH_LOG_FILE"
	EnvWorkers   = "DSYNTH_WORKERS"
	EnvSeed      = "DSYNTH_SEED"
	EnvMaxCount  = "DSYNTH_MAX_COUNT"
	EnvWatch     = "DSYNTH_WATCH"
)

// ApplyEnv overrides cfg with the DSYNTH_* variables that are set.
// Unparsable numeric or boolean values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generator.Workers = n
		}
	}
	if v := os.Getenv(EnvSeed); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Generator.Seed = &n
		}
	}
	if v := os.Getenv(EnvMaxCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generator.MaxCount = n
		}
	}
	if v := os.Getenv(EnvWatch); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Watch = b
		}
	}
}

// Load resolves the configuration: defaults, then the file at path (or
// $DSYNTH_CONFIG when path is empty; no file is fine), then environment
// overrides. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
