package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
)

// Grid cell styles.
var (
	cellNormalStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	cellWeekendStyle = lipgloss.NewStyle().Foreground(colorGray)
	cellBoldStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	cellItalicStyle  = lipgloss.NewStyle().Italic(true).Foreground(colorCyan)
	cellBothStyle    = lipgloss.NewStyle().Bold(true).Italic(true).Foreground(colorCyan)
)

// previewModel is the bubbletea model for the month grid browser.
type previewModel struct {
	year        int
	locale      calgrid.Locale
	sundayFirst bool
	rule        emphasis.Rule

	month time.Month
	err   error
}

// newPreviewModel starts the browser on January.
func newPreviewModel(year int, locale calgrid.Locale, sundayFirst bool, rule emphasis.Rule) previewModel {
	return previewModel{
		year:        year,
		locale:      locale,
		sundayFirst: sundayFirst,
		rule:        rule,
		month:       time.January,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.month > time.January {
				m.month--
			}
		case "right", "l":
			if m.month < time.December {
				m.month++
			}
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	spec := m.locale.Spec(m.year, m.month, m.sundayFirst)
	cells, err := calgrid.Compose(spec, m.rule)
	if err != nil {
		return StyleWarning.Render(err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(spec.Title()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ change month  q quit"))
	b.WriteString("\n\n")

	headers := make([]string, calgrid.Columns)
	for i, name := range spec.WeekdayNames {
		headers[i] = name
	}

	var rows [][]string
	for _, week := range calgrid.Weeks(cells) {
		row := make([]string, calgrid.Columns)
		for _, cell := range week {
			row[cell.Column] = renderPreviewCell(cell)
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("bold/italic mark emphasized days"))
	b.WriteString("\n")
	return b.String()
}

// renderPreviewCell formats one day for the grid table.
func renderPreviewCell(cell calgrid.DayCell) string {
	if cell.Blank {
		return "  "
	}
	label := fmt.Sprintf("%2d", cell.Date.Day)

	switch cell.Emphasis {
	case emphasis.Bold:
		return cellBoldStyle.Render(label)
	case emphasis.Italic:
		return cellItalicStyle.Render(label)
	case emphasis.Both:
		return cellBothStyle.Render(label)
	}
	if cell.Weekend {
		return cellWeekendStyle.Render(label)
	}
	return cellNormalStyle.Render(label)
}
