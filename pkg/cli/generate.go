package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/praskarnam/DSynth/pkg/cli/internal/flags"
	"github.com/praskarnam/DSynth/pkg/config"
	"github.com/praskarnam/DSynth/pkg/generator"
	"github.com/praskarnam/DSynth/pkg/output"
	"github.com/praskarnam/DSynth/pkg/store"
	"github.com/praskarnam/DSynth/pkg/store/file"
)

// generateOptions holds the generate command's flags.
type generateOptions struct {
	count     int
	seed      int64
	seedSet   bool
	format    string
	types     flags.StringSlice
	output    string
	withStore bool
}

var genOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate <schema-file|glob>...",
	Short: "Generate records for schema files",
	Long: `Generate records for one or more schema files (JSON or YAML).

A schema file holds one schema: a name, its fields and optionally the
JSON-Schema or XML content the fields were derived from. Patterns may use
** to match recursively.

Examples:
  # 10 records as JSON on stdout
  dsynth generate users.json --count 10

  # Reproducible YAML
  dsynth generate users.yaml --seed 42 --format yaml

  # Every schema under schemas/, one file per schema
  dsynth generate 'schemas/**/*.yaml' --format msgpack -o out/

  # Custom types from a file and from the data directory
  dsynth generate orders.json --types types.yaml --with-store`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts := genOpts
		opts.seedSet = cmd.Flags().Changed("seed")
		return runGenerate(cmd.Context(), cmd.OutOrStdout(), cfg, log, opts, args)
	},
}

func init() {
	f := generateCmd.Flags()
	f.IntVarP(&genOpts.count, "count", "n", 0, "Records per schema (default: the schema's seedCount)")
	f.Int64Var(&genOpts.seed, "seed", 0, "Seed for reproducible output")
	f.StringVarP(&genOpts.format, "format", "f", "json", "Output format: "+strings.Join(output.Formats(), ", "))
	f.VarP(&genOpts.types, "types", "t", "Custom type file (JSON or YAML list of {name, expression}); repeatable")
	f.StringVarP(&genOpts.output, "output", "o", "", "Output file, or directory when several schemas match (default: stdout)")
	f.BoolVar(&genOpts.withStore, "with-store", false, "Also register the active custom types from the data directory")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, stdout io.Writer, cfg *config.Config, log *slog.Logger, opts generateOptions, patterns []string) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	paths, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(paths) > 1 && opts.output == "" {
		return ErrMultipleToStdout
	}

	gen := generator.New(generator.WithLogger(log), generator.WithWorkers(cfg.Generator.Workers))
	switch {
	case opts.seedSet:
		gen.SetSeed(opts.seed)
	case cfg.Generator.Seed != nil:
		gen.SetSeed(*cfg.Generator.Seed)
	}
	if err := registerTypes(ctx, gen, cfg, opts); err != nil {
		return err
	}

	toDir := len(paths) > 1 || isDirTarget(opts.output)
	for _, path := range paths {
		s, err := config.LoadSchemaFile(path)
		if err != nil {
			return err
		}
		count := s.RecordCount()
		if opts.count > 0 {
			count = opts.count
		}
		if count > cfg.Generator.MaxCount {
			return fmt.Errorf("%s: count %d exceeds maxCount %d", path, count, cfg.Generator.MaxCount)
		}

		records, err := gen.Generate(ctx, s, count)
		if err != nil {
			return err
		}

		target := opts.output
		if toDir {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			target = filepath.Join(opts.output, base+format.Extension())
		}
		if err := writeRecords(stdout, target, format, records); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Info("generated records", "schema", s.Name, "count", len(records), "output", displayTarget(target))
	}
	return nil
}

// registerTypes loads custom types: the data directory's active types when
// requested, then every --types file in order. Later definitions win.
func registerTypes(ctx context.Context, gen *generator.Generator, cfg *config.Config, opts generateOptions) error {
	if opts.withStore {
		st := file.New(store.Config{DataDir: cfg.DataDir, ReadOnly: true})
		if err := st.Open(ctx); err != nil {
			return fmt.Errorf("opening data directory: %w", err)
		}
		types, err := st.CustomTypes().List(ctx)
		_ = st.Close()
		if err != nil {
			return err
		}
		for _, def := range store.ActiveDefinitions(types) {
			gen.Register(def)
		}
	}
	for _, path := range opts.types {
		defs, err := config.LoadTypesFile(path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			gen.Register(def)
		}
	}
	return nil
}

// expandPatterns resolves each argument as a doublestar glob. An argument
// without glob metacharacters is kept as a literal path so a missing file
// surfaces as a load error. The result is de-duplicated and sorted.
func expandPatterns(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			paths = append(paths, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)
	if len(paths) == 0 {
		return nil, ErrNoSchemas
	}
	return paths, nil
}

// isDirTarget reports whether the output flag names a directory.
func isDirTarget(path string) bool {
	if path == "" {
		return false
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writeRecords encodes records to target, or to stdout when target is "".
func writeRecords(stdout io.Writer, target string, format output.Format, records []generator.Record) error {
	if target == "" {
		return output.Encode(stdout, format, records)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if err := output.Encode(f, format, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func displayTarget(target string) string {
	if target == "" {
		return "stdout"
	}
	return target
}
