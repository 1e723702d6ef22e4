package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/holidays"
)

// previewCommand creates the preview command for browsing month grids in the
// terminal without rendering any pages.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		year           int
		locale         string
		sundayFirst    bool
		boldHolidays   string
		italicHolidays string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse composed month grids interactively",
		Long: `Browse composed month grids interactively.

Shows each month's day grid with emphasis applied, exactly as the rendered
pages will lay it out. Use the arrow keys to move between months.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			loc, err := calgrid.Lookup(locale)
			if err != nil {
				return err
			}
			rule, err := previewRule(year, parseList(boldHolidays), parseList(italicHolidays))
			if err != nil {
				return err
			}

			model := newPreviewModel(year, loc, sundayFirst, rule)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "target year (default: current year)")
	cmd.Flags().StringVar(&locale, "locale", "sk", "locale for month and weekday names")
	cmd.Flags().BoolVar(&sundayFirst, "sunday-first", false, "start weeks on Sunday instead of Monday")
	cmd.Flags().StringVar(&boldHolidays, "bold-holidays", "cz", "holiday calendars shown bold (comma-separated codes)")
	cmd.Flags().StringVar(&italicHolidays, "italic-holidays", "sk", "holiday calendars shown italic (comma-separated codes)")

	return cmd
}

// previewRule builds the emphasis rule for the preview from holiday calendars.
func previewRule(year int, bold, italic []string) (emphasis.Rule, error) {
	rule := emphasis.Rule{
		Bold:   emphasis.NewDateSet(),
		Italic: emphasis.NewDateSet(),
	}
	for _, code := range bold {
		set, err := holidays.Dates(code, year)
		if err != nil {
			return emphasis.Rule{}, err
		}
		for d := range set {
			rule.Bold.Add(d)
		}
	}
	for _, code := range italic {
		set, err := holidays.Dates(code, year)
		if err != nil {
			return emphasis.Rule{}, err
		}
		for d := range set {
			rule.Italic.Add(d)
		}
	}
	return rule, nil
}
