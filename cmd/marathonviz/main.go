package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"marathonviz/adapters/geo"
	"marathonviz/adapters/tabular"
	"marathonviz/app"
	"marathonviz/domain/results"
	"marathonviz/internal"
	"marathonviz/internal/config"
	"marathonviz/internal/errors"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError prefixes pipeline failures with their code. Usage errors from
// cobra (wrong argument count, unknown command) are printed as they are.
func formatError(err error) string {
	if !errors.IsAppError(err) {
		return err.Error()
	}
	return fmt.Sprintf("[%s] %v", errors.Classify(err), err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marathonviz",
		Short: "Turn marathon results into an animation-ready distance dataset",
		Long: `marathonviz reads a marathon result table, adds median comparison rows,
derives pace and speed for every finisher and writes one row per finisher per
checkpoint with the distance covered so far.

Settings come from the environment (or a .env file):
- RACE_DISTANCE_KM (default 42.2)
- ANIMATION_INTERVAL_MINUTES (default: the variant's own interval)
- COMPETITION_NAME
- LOG_LEVEL=ERROR|WARN|INFO|DEBUG|TRACE (default INFO)
- VARIANTS_FILE (YAML file with additional variants)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newVariantCmd(results.Individuals()),
		newVariantCmd(results.Countries()),
		newRunCmd(),
		newVariantsCmd(),
	)
	return rootCmd
}

func newVariantCmd(variant results.Variant) *cobra.Command {
	return &cobra.Command{
		Use:   variant.Name + " [input] [output]",
		Short: "Build the " + variant.Description,
		Long: fmt.Sprintf(`Build the animation dataset with the %s variant.

Input: CSV, TSV or XLSX with columns %s and %s.
Output: tab-delimited text, or XLSX when the name ends in .xlsx.

Example: marathonviz %s results.csv animation.csv`,
			variant.Name, variant.IDColumn, variant.FinishTimeColumn, variant.Name),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), variant, args[0], args[1])
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [variant] [input] [output]",
		Short: "Build the dataset with a named variant, including those from VARIANTS_FILE",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			catalog, err := config.LoadVariants(cfg.Variants.File)
			if err != nil {
				return err
			}
			variant, err := catalog.Lookup(args[0])
			if err != nil {
				return errors.Wrapf(err, "available variants: %s", strings.Join(catalog.Names(), ", "))
			}
			return export(cmd.Context(), cfg, variant, args[1], args[2])
		},
	}
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the known dataset variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			catalog, err := config.LoadVariants(cfg.Variants.File)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range catalog.Names() {
				v := catalog[name]
				fmt.Fprintf(out, "%-12s id=%s finish=%s group=%s interval=%dmin  %s\n",
					name, v.IDColumn, v.FinishTimeColumn, v.GroupColumn, v.AnimationInterval, v.Description)
			}
			return nil
		},
	}
}

func runExport(ctx context.Context, variant results.Variant, inPath, outPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return export(ctx, cfg, variant, inPath, outPath)
}

func export(ctx context.Context, cfg *config.Config, variant results.Variant, inPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := internal.NewLoggerFromString(cfg.Logging.Level)

	animation, err := app.NewAnimationService(cfg.Settings(), geo.NewContinentResolver(nil), logger)
	if err != nil {
		return err
	}
	svc := app.NewExportService(tabular.NewReader(logger), tabular.NewWriter(logger), animation, logger)

	_, err = svc.Export(ctx, variant, inPath, outPath)
	return err
}
