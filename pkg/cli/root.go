package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/praskarnam/DSynth/pkg/config"
	"github.com/praskarnam/DSynth/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	dataDir    string
	logLevel   string
	logFormat  string
	logFile    string
	jsonOutput bool

	// logSink is the open --log-file, closed when the command finishes
	logSink io.Closer

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dsynth",
	Short: "dsynth generates synthetic records from declared schemas",
	Long: `dsynth synthesizes mock records for JSON-Schema or XML/XSD described data.

Each schema field is generated from a builtin semantic type (name, email,
date, ...), a user-defined custom type, or an inline expression such as
random.int(1, 100) or choice('a','b','c').

Configuration can be provided via flags, DSYNTH_* environment variables, or
a configuration file (--config or DSYNTH_CONFIG).`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	closeLogSink()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding schemas.json and custom_types.json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadConfig resolves the configuration layers and applies the root flags
// that were set on the command line. The logger writes to cmd's stderr.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	f := cmd.Flags()
	if f.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if f.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if f.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	lc := cfg.LoggingConfig()
	lc.Output = cmd.ErrOrStderr()
	if cfg.Log.File != "" {
		closeLogSink()
		sink, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		logSink = sink
		lc.File = sink
	}
	return cfg, logging.New(lc), nil
}

func closeLogSink() {
	if logSink != nil {
		_ = logSink.Close()
		logSink = nil
	}
}
