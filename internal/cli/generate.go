package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pebblecal/pkg/config"
	"github.com/matzehuels/pebblecal/pkg/pipeline"
)

// generateCommand creates the generate command, the main entry point for
// producing a calendar.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		configPath     string
		year           int
		locale         string
		sundayFirst    bool
		seed           string
		formatsStr     string
		style          string
		outDir         string
		reportPath     string
		boldHolidays   string
		italicHolidays string
		boldDates      string
		italicDates    string
		shrink         bool
		noCache        bool
		refresh        bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the twelve month pages and the emphasis report",
		Long: `Generate the twelve month pages and the emphasis report.

Each month page carries one pebble per day, placed without overlaps by a
seeded random stream. Passing --seed reproduces a previous run exactly;
without it a fresh seed is chosen and printed so the run can be repeated.

A TOML config file (--config) provides base settings; explicit flags
override it. Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			opts := pipeline.FromConfig(cfg)

			// Flags override the config file.
			flags := cmd.Flags()
			if flags.Changed("year") {
				opts.Year = year
			}
			if flags.Changed("locale") {
				opts.Locale = locale
			}
			if flags.Changed("sunday-first") {
				opts.SundayFirst = sundayFirst
			}
			if flags.Changed("seed") {
				opts.Seed = seed
			}
			if flags.Changed("format") {
				opts.Formats = parseFormats(formatsStr)
			}
			if flags.Changed("style") {
				opts.Style = style
			}
			if flags.Changed("bold-holidays") {
				opts.BoldHolidays = parseList(boldHolidays)
			}
			if flags.Changed("italic-holidays") {
				opts.ItalicHolidays = parseList(italicHolidays)
			}
			if flags.Changed("bold-dates") {
				opts.BoldDates = parseList(boldDates)
			}
			if flags.Changed("italic-dates") {
				opts.ItalicDates = parseList(italicDates)
			}
			if flags.Changed("shrink") {
				opts.Constraints.ShrinkOnExhaust = shrink
			}
			opts.Refresh = refresh

			if flags.Changed("output") {
				cfg.Output.Dir = outDir
			}
			if flags.Changed("report") {
				cfg.Output.Report = reportPath
			}

			return c.runGenerate(cmd.Context(), opts, cfg.Output.Dir, cfg.Output.Report, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().IntVar(&year, "year", 0, "target year (default: current year)")
	cmd.Flags().StringVar(&locale, "locale", "", "locale for month and weekday names: sk (default), en")
	cmd.Flags().BoolVar(&sundayFirst, "sunday-first", false, "start weeks on Sunday instead of Monday")
	cmd.Flags().StringVar(&seed, "seed", "", "placement seed (default: random)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png (comma-separated)")
	cmd.Flags().StringVar(&style, "style", "", "visual style: sketch (default), simple")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&reportPath, "report", "", "emphasis report path")
	cmd.Flags().StringVar(&boldHolidays, "bold-holidays", "", "holiday calendars rendered bold (comma-separated codes)")
	cmd.Flags().StringVar(&italicHolidays, "italic-holidays", "", "holiday calendars rendered italic (comma-separated codes)")
	cmd.Flags().StringVar(&boldDates, "bold-dates", "", "explicit bold dates, ISO format (comma-separated)")
	cmd.Flags().StringVar(&italicDates, "italic-dates", "", "explicit italic dates, ISO format (comma-separated)")
	cmd.Flags().BoolVar(&shrink, "shrink", false, "shrink pebbles instead of failing when placement is too tight")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached renders")

	return cmd
}

// runGenerate executes the pipeline and writes the outputs.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, outDir, reportPath string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger

	spinner := startSpinner(ctx, "Placing pebbles...")

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.fail("Generation failed")
		return err
	}
	spinner.stop()
	prog.done(fmt.Sprintf("Placed %d pebbles", result.Stats.Pebbles))

	failed := result.Failed()
	for _, m := range failed {
		printWarning("%s failed: %v", m.Month, m.Err)
	}

	if err := pipeline.WriteArtifacts(result, opts.Year, outDir, reportPath); err != nil {
		return err
	}

	printSuccess("Generated calendar %d (seed %s)", opts.Year, StyleHighlight.Render(result.Seed.String()))
	printRunStats(12-len(failed), result.Stats.Pebbles, result.Stats.Emphasized, result.CacheInfo.Misses == 0)
	for _, m := range result.Months {
		if m.Err != nil {
			continue
		}
		for _, format := range opts.Formats {
			printFile(filepath.Join(outDir, fmt.Sprintf("%04d-%02d.%s", opts.Year, m.Month, format)))
		}
	}
	if reportPath != "" {
		printFile(reportPath)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d month(s) failed", len(failed))
	}
	return nil
}
