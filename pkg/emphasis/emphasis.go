// Package emphasis maps calendar dates to bold/italic emphasis flags.
//
// Emphasis is fed from two layers of date sets: automatic sources (holiday
// calendars) and explicit per-date overrides. Overrides take precedence — a
// date present in any override set takes its emphasis solely from the
// overrides, and the automatic tags for that date are ignored. Resolution is
// a pure, total function over valid calendar dates.
package emphasis

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/pebblecal/pkg/errors"
)

// Flag is the emphasis attached to a calendar date.
type Flag int

const (
	None Flag = iota
	Bold
	Italic
	Both
)

// String returns the report-artifact spelling of the flag.
func (f Flag) String() string {
	switch f {
	case Bold:
		return "BOLD"
	case Italic:
		return "ITALIC"
	case Both:
		return "BOTH"
	default:
		return "NONE"
	}
}

// ParseFlag converts a report-artifact spelling back into a Flag.
func ParseFlag(s string) (Flag, error) {
	switch s {
	case "NONE":
		return None, nil
	case "BOLD":
		return Bold, nil
	case "ITALIC":
		return Italic, nil
	case "BOTH":
		return Both, nil
	}
	return None, errors.New(errors.ErrCodeInvalidInput, "unknown emphasis flag %q", s)
}

// Date is a calendar date without a time component or location. Using a plain
// value type keeps date sets comparable and deterministic.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date. It does not validate; see Valid.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO "2006-01-02" date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "malformed date %q", s)
	}
	return DateOf(t), nil
}

// String returns the ISO "2006-01-02" form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether d names a real calendar date.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day && t.Month() == d.Month && t.Year() == d.Year
}

// Compare orders dates chronologically.
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// DateSet is an unordered set of dates.
type DateSet map[Date]struct{}

// NewDateSet builds a set from the given dates.
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Has reports set membership. A nil set contains nothing.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Add inserts a date.
func (s DateSet) Add(d Date) {
	s[d] = struct{}{}
}

// Rule is the resolved emphasis configuration for a run: automatic bold and
// italic sources plus explicit overrides.
type Rule struct {
	Bold           DateSet
	Italic         DateSet
	OverrideBold   DateSet
	OverrideItalic DateSet
}

// Resolve returns the emphasis for a date under the override-wins precedence
// rule. A date in any override set is resolved from the overrides alone;
// otherwise the automatic sources apply. A date tagged bold and italic after
// precedence yields Both; a date in no set yields None.
func (r Rule) Resolve(d Date) Flag {
	bold := r.Bold.Has(d)
	italic := r.Italic.Has(d)
	if r.OverrideBold.Has(d) || r.OverrideItalic.Has(d) {
		bold = r.OverrideBold.Has(d)
		italic = r.OverrideItalic.Has(d)
	}

	switch {
	case bold && italic:
		return Both
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return None
	}
}

// FilterYear returns a copy of the rule restricted to dates within year,
// along with the dates that were dropped, in ascending order. Out-of-range
// dates are a recoverable condition: callers log them and continue.
func (r Rule) FilterYear(year int) (Rule, []Date) {
	var dropped []Date
	filter := func(s DateSet) DateSet {
		if s == nil {
			return nil
		}
		kept := make(DateSet, len(s))
		for d := range s {
			if d.Year == year && d.Valid() {
				kept[d] = struct{}{}
			} else {
				dropped = append(dropped, d)
			}
		}
		return kept
	}

	out := Rule{
		Bold:           filter(r.Bold),
		Italic:         filter(r.Italic),
		OverrideBold:   filter(r.OverrideBold),
		OverrideItalic: filter(r.OverrideItalic),
	}
	slices.SortFunc(dropped, Date.Compare)
	return out, dropped
}
