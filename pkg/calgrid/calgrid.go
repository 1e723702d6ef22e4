// Package calgrid composes the day-cell grid for one calendar month.
//
// The grid is an ordered sequence of cells aligned to full week rows: blank
// placeholder cells pad the first and last weeks so every row has seven
// columns. Each dated cell carries its day-of-week column, a weekend marker,
// and the emphasis flag resolved for its date. Locale month and weekday names
// are attached for display only and never affect the date arithmetic.
package calgrid

import (
	"fmt"
	"time"

	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/errors"
)

// Columns is the fixed week width of the grid.
const Columns = 7

// MonthSpec is the locale and calendar metadata for one month's grid.
// Immutable once constructed; use [Locale.Spec] for the built-in locales.
type MonthSpec struct {
	Year  int
	Month time.Month

	// MonthName is the locale display name for the month.
	MonthName string

	// WeekdayNames are the column headers, already ordered for the
	// first-day-of-week convention below.
	WeekdayNames [Columns]string

	// SundayFirst selects the week convention: when false, weeks run
	// Monday through Sunday.
	SundayFirst bool
}

// Validate checks the spec names a real month.
func (s MonthSpec) Validate() error {
	if s.Month < time.January || s.Month > time.December {
		return errors.New(errors.ErrCodeInvalidInput, "month number %d out of range", s.Month)
	}
	if s.Year < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "year %d out of range", s.Year)
	}
	return nil
}

// Title returns the page heading, e.g. "Júl 2023".
func (s MonthSpec) Title() string {
	return fmt.Sprintf("%s %d", s.MonthName, s.Year)
}

// DayCell is one grid slot. Blank cells pad the grid to week boundaries and
// carry no date and no emphasis.
type DayCell struct {
	Date     emphasis.Date
	Column   int // day-of-week column, 0-based
	Emphasis emphasis.Flag
	Weekend  bool
	Blank    bool
}

// DaysIn returns the true number of days in a month, leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Compose produces the ordered cell sequence for the month described by spec,
// with emphasis flags resolved from rule. The result always has a length that
// is a multiple of [Columns].
func Compose(spec MonthSpec, rule emphasis.Rule) ([]DayCell, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	days := DaysIn(spec.Year, spec.Month)
	first := time.Date(spec.Year, spec.Month, 1, 0, 0, 0, 0, time.UTC)

	cells := make([]DayCell, 0, 6*Columns)
	for col := range spec.column(first.Weekday()) {
		cells = append(cells, DayCell{Column: col, Blank: true})
	}

	for day := 1; day <= days; day++ {
		t := time.Date(spec.Year, spec.Month, day, 0, 0, 0, 0, time.UTC)
		d := emphasis.DateOf(t)
		cells = append(cells, DayCell{
			Date:     d,
			Column:   spec.column(t.Weekday()),
			Emphasis: rule.Resolve(d),
			Weekend:  t.Weekday() == time.Saturday || t.Weekday() == time.Sunday,
		})
	}

	for len(cells)%Columns != 0 {
		cells = append(cells, DayCell{Column: len(cells) % Columns, Blank: true})
	}
	return cells, nil
}

// column maps a weekday to its grid column under the spec's convention.
func (s MonthSpec) column(w time.Weekday) int {
	if s.SundayFirst {
		return int(w)
	}
	return (int(w) + 6) % Columns
}

// Weeks regroups a composed cell sequence into week rows.
func Weeks(cells []DayCell) [][]DayCell {
	weeks := make([][]DayCell, 0, len(cells)/Columns)
	for i := 0; i+Columns <= len(cells); i += Columns {
		weeks = append(weeks, cells[i:i+Columns])
	}
	return weeks
}
