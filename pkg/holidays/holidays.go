// Package holidays supplies public-holiday date sets per country and year.
//
// Providers are registered by ISO-ish country code and produce the fixed-date
// holidays plus the movable Easter-derived ones. The built-in providers cover
// the countries the calendar was originally produced for; new countries are a
// matter of registering another provider.
package holidays

import (
	"slices"
	"time"

	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/errors"
)

// Provider yields the public holidays of one country for a given year.
type Provider interface {
	// Code is the registry key, e.g. "sk".
	Code() string
	// Name is the country display name.
	Name() string
	// Holidays returns all public holidays of the year in ascending order.
	Holidays(year int) []emphasis.Date
}

var providers = map[string]Provider{}

func register(p Provider) {
	providers[p.Code()] = p
}

func init() {
	register(slovakia{})
	register(czechia{})
}

// Lookup finds a provider by country code.
func Lookup(code string) (Provider, error) {
	p, ok := providers[code]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown holiday country %q (available: %v)", code, Codes())
	}
	return p, nil
}

// Codes lists the registered country codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(providers))
	for code := range providers {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Dates is a convenience that resolves a country's holidays into a date set.
func Dates(code string, year int) (emphasis.DateSet, error) {
	p, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	return emphasis.NewDateSet(p.Holidays(year)...), nil
}

// fixed is a recurring month/day holiday.
type fixed struct {
	month time.Month
	day   int
}

func expand(year int, days []fixed, easterOffsets []int) []emphasis.Date {
	dates := make([]emphasis.Date, 0, len(days)+len(easterOffsets))
	for _, f := range days {
		dates = append(dates, emphasis.NewDate(year, f.month, f.day))
	}
	e := Easter(year)
	for _, off := range easterOffsets {
		t := time.Date(e.Year, e.Month, e.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, off)
		dates = append(dates, emphasis.DateOf(t))
	}
	slices.SortFunc(dates, emphasis.Date.Compare)
	return dates
}

// Offsets of the movable feasts relative to Easter Sunday.
const (
	goodFriday   = -2
	easterMonday = 1
)

type slovakia struct{}

func (slovakia) Code() string { return "sk" }
func (slovakia) Name() string { return "Slovakia" }

func (slovakia) Holidays(year int) []emphasis.Date {
	return expand(year, []fixed{
		{time.January, 1},   // Republic day
		{time.January, 6},   // Epiphany
		{time.May, 1},       // Labour day
		{time.May, 8},       // Victory over fascism
		{time.July, 5},      // St. Cyril and Methodius
		{time.August, 29},   // National uprising
		{time.September, 1}, // Constitution day
		{time.September, 15}, // Our Lady of Sorrows
		{time.November, 1},  // All Saints
		{time.November, 17}, // Freedom and democracy
		{time.December, 24},
		{time.December, 25},
		{time.December, 26},
	}, []int{goodFriday, easterMonday})
}

type czechia struct{}

func (czechia) Code() string { return "cz" }
func (czechia) Name() string { return "Czechia" }

func (czechia) Holidays(year int) []emphasis.Date {
	return expand(year, []fixed{
		{time.January, 1},    // Restoration of the state
		{time.May, 1},        // Labour day
		{time.May, 8},        // Liberation day
		{time.July, 5},       // St. Cyril and Methodius
		{time.July, 6},       // Jan Hus
		{time.September, 28}, // Statehood day
		{time.October, 28},   // Independent state
		{time.November, 17},  // Freedom and democracy
		{time.December, 24},
		{time.December, 25},
		{time.December, 26},
	}, []int{goodFriday, easterMonday})
}
