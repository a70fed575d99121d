package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/praskarnam/DSynth/pkg/store"
	"github.com/praskarnam/DSynth/pkg/store/file"
)

var (
	restoreSchemas string
	restoreTypes   string
	clearConfirmed bool
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Back up, restore, export or clear the data directory",
}

var dataBackupCmd = &cobra.Command{
	Use:   "backup [dir]",
	Short: "Copy schemas.json and custom_types.json to timestamped files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *file.FileStore) error {
			snap, err := st.Backup(cmd.Context(), targetDir(st, args, "backups"))
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), "Backup", snap)
		})
	},
}

var dataExportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Write the stored schemas and custom types to timestamped files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *file.FileStore) error {
			snap, err := st.Export(cmd.Context(), targetDir(st, args, "exports"))
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), "Export", snap)
		})
	},
}

var dataRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the data files with backup files",
	Long: `Replace the data files with backup files. A file that is not given is
left unchanged.

Example:
  dsynth data restore --schemas backups/schemas_20240310_120000.json \
    --types backups/custom_types_20240310_120000.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreSchemas == "" && restoreTypes == "" {
			return fmt.Errorf("%w: give --schemas and/or --types", store.ErrInvalid)
		}
		return withStore(cmd, func(st *file.FileStore) error {
			snap := &store.Snapshot{SchemasPath: restoreSchemas, CustomTypesPath: restoreTypes}
			if err := st.Restore(cmd.Context(), snap); err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), "Restored", snap)
		})
	},
}

var dataClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored schema and custom type",
	Long: `Remove every stored schema and custom type. Without --yes the command
asks for confirmation when run in a terminal and refuses otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(st *file.FileStore) error {
			confirmed := clearConfirmed
			if !cmd.Flags().Changed("yes") && interactive() {
				ok, err := confirmClear(st.DataDir())
				if err != nil {
					return err
				}
				confirmed = ok
			}
			if !confirmed {
				return ErrClearNotConfirmed
			}
			if err := st.Clear(cmd.Context()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return printResult(w, map[string]string{"cleared": st.DataDir()}, func() {
				fmt.Fprintf(w, "Cleared %s\n", st.DataDir())
			})
		})
	},
}

func init() {
	dataRestoreCmd.Flags().StringVar(&restoreSchemas, "schemas", "", "Schemas backup file")
	dataRestoreCmd.Flags().StringVar(&restoreTypes, "types", "", "Custom types backup file")
	dataClearCmd.Flags().BoolVar(&clearConfirmed, "yes", false, "Confirm clearing")

	dataCmd.AddCommand(dataBackupCmd, dataExportCmd, dataRestoreCmd, dataClearCmd)
	rootCmd.AddCommand(dataCmd)
}

// withStore opens the configured data directory for fn.
func withStore(cmd *cobra.Command, fn func(st *file.FileStore) error) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := file.New(store.Config{DataDir: cfg.DataDir}, file.WithLogger(log))
	if err := st.Open(cmd.Context()); err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return fn(st)
}

// targetDir returns args[0], or sub inside the data directory.
func targetDir(st *file.FileStore, args []string, sub string) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(st.DataDir(), sub)
}

func printSnapshot(w io.Writer, verb string, snap *store.Snapshot) error {
	return printResult(w, snap, func() {
		fmt.Fprintf(w, "%s:\n", verb)
		if snap.SchemasPath != "" {
			fmt.Fprintf(w, "  schemas:      %s\n", snap.SchemasPath)
		}
		if snap.CustomTypesPath != "" {
			fmt.Fprintf(w, "  custom types: %s\n", snap.CustomTypesPath)
		}
	})
}
