package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/praskarnam/DSynth/pkg/cli/internal/output"
	"github.com/praskarnam/DSynth/pkg/faker"
	"github.com/praskarnam/DSynth/pkg/schema"
	"github.com/praskarnam/DSynth/pkg/store"
	"github.com/praskarnam/DSynth/pkg/store/file"
)

var (
	typesCustom  bool
	typesMethods bool
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the builtin data types",
	Long: `List the builtin data types a field's dataType may name.

With --custom, list the custom types stored in the data directory instead.
With --methods, list the provider methods a faker.<method> expression may call.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case typesMethods:
			return printMethods(cmd.OutOrStdout())
		case !typesCustom:
			return printCatalog(cmd.OutOrStdout())
		}
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return printCustomTypes(cmd.Context(), cmd.OutOrStdout(), cfg.DataDir)
	},
}

func init() {
	typesCmd.Flags().BoolVar(&typesCustom, "custom", false, "List stored custom types")
	typesCmd.Flags().BoolVar(&typesMethods, "methods", false, "List faker provider methods")
	typesCmd.MarkFlagsMutuallyExclusive("custom", "methods")
	rootCmd.AddCommand(typesCmd)
}

func printCatalog(w io.Writer) error {
	catalog := schema.Catalog()
	return printResult(w, catalog, func() {
		tw := output.Table(w)
		fmt.Fprintln(tw, "NAME\tCATEGORY\tDESCRIPTION")
		for _, ti := range catalog {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", ti.Name, ti.Category, ti.Description)
		}
		_ = tw.Flush()
	})
}

func printMethods(w io.Writer) error {
	methods := faker.Methods()
	return printResult(w, methods, func() {
		for _, m := range methods {
			fmt.Fprintf(w, "faker.%s\n", m)
		}
	})
}

func printCustomTypes(ctx context.Context, w io.Writer, dir string) error {
	st := file.New(store.Config{DataDir: dir, ReadOnly: true})
	if err := st.Open(ctx); err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	types, err := st.CustomTypes().List(ctx)
	if err != nil {
		return err
	}
	return printResult(w, types, func() {
		if len(types) == 0 {
			fmt.Fprintln(w, "No custom types")
			return
		}
		tw := output.Table(w)
		fmt.Fprintln(tw, "NAME\tACTIVE\tEXPRESSION")
		for _, t := range types {
			fmt.Fprintf(tw, "%s\t%t\t%s\n", t.Name, t.IsActive, t.Expression)
		}
		_ = tw.Flush()
	})
}
