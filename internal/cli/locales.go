package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/holidays"
	"github.com/matzehuels/pebblecal/pkg/render/styles"
)

// localesCommand creates the locales command listing the available
// registries: display locales, holiday calendars, and visual styles.
func (c *CLI) localesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List available locales, holiday calendars, and styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Locales"))
			for _, code := range calgrid.Codes() {
				loc, err := calgrid.Lookup(code)
				if err != nil {
					return err
				}
				spec := loc.Spec(time.Now().Year(), time.January, false)
				printKeyValue(code, strings.Join(spec.WeekdayNames[:], " "))
			}

			fmt.Println()
			fmt.Println(StyleTitle.Render("Holiday calendars"))
			for _, code := range holidays.Codes() {
				p, err := holidays.Lookup(code)
				if err != nil {
					return err
				}
				printKeyValue(code, p.Name())
			}

			fmt.Println()
			fmt.Println(StyleTitle.Render("Styles"))
			for _, name := range styles.Names() {
				printDetail("%s", name)
			}
			return nil
		},
	}
}
