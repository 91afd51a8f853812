package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mixup",
		Short:        "Compose cocktails and report their volume, strength, sugar and acid",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(composeCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(catalogCmd())
	return rootCmd
}

func composeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compose [book.yaml] [drink]",
		Short: "Compose one drink, or every drink, from a YAML recipe book",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			return runCompose(cmd.Context(), cmd.OutOrStdout(), args[0], name, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print drinks as JSON")
	return cmd
}

func parseCmd() *cobra.Command {
	var bookPath string

	cmd := &cobra.Command{
		Use:   "parse [recipe.txt|recipe.pdf]",
		Short: "Read a recipe from text or PDF and optionally compose it against a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), args[0], bookPath)
		},
	}

	cmd.Flags().StringVarP(&bookPath, "book", "b", "", "YAML recipe book supplying the liquids")
	return cmd
}

func catalogCmd() *cobra.Command {
	var (
		useMock bool
		workers int
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Recompose every stored drink against the current liquids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd.Context(), cmd.OutOrStdout(), useMock, workers)
		},
	}

	cmd.Flags().BoolVar(&useMock, "mock", false, "use the seeded in-memory database")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent compositions (defaults to the configured value)")
	return cmd
}
