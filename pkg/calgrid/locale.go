package calgrid

import (
	"slices"
	"time"

	"github.com/matzehuels/pebblecal/pkg/errors"
)

// Locale bundles the display names for one language. Weekday names are stored
// Monday-first and rotated on demand for Sunday-first grids.
type Locale struct {
	Code         string
	MonthNames   [12]string
	WeekdayNames [Columns]string
}

// Built-in locales keyed by code.
var locales = map[string]Locale{
	"en": {
		Code: "en",
		MonthNames: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		WeekdayNames: [Columns]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	},
	"sk": {
		Code: "sk",
		MonthNames: [12]string{
			"Január", "Február", "Marec", "Apríl", "Máj", "Jún",
			"Júl", "August", "September", "Október", "November", "December",
		},
		WeekdayNames: [Columns]string{"Po", "Ut", "St", "Št", "Pi", "So", "Ne"},
	},
}

// Lookup finds a built-in locale by code.
func Lookup(code string) (Locale, error) {
	l, ok := locales[code]
	if !ok {
		return Locale{}, errors.New(errors.ErrCodeInvalidLocale, "unknown locale %q (available: %v)", code, Codes())
	}
	return l, nil
}

// Codes lists the built-in locale codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(locales))
	for code := range locales {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Spec builds the MonthSpec for one month under this locale and week
// convention.
func (l Locale) Spec(year int, month time.Month, sundayFirst bool) MonthSpec {
	spec := MonthSpec{
		Year:        year,
		Month:       month,
		MonthName:   l.MonthNames[month-1],
		SundayFirst: sundayFirst,
	}
	if sundayFirst {
		spec.WeekdayNames[0] = l.WeekdayNames[Columns-1]
		copy(spec.WeekdayNames[1:], l.WeekdayNames[:Columns-1])
	} else {
		spec.WeekdayNames = l.WeekdayNames
	}
	return spec
}
