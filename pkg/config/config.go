// Package config loads TOML run configuration. A config file captures a full
// calendar run so the same artifact can be regenerated later with nothing
// but the file and the seed.
package config

import (
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/errors"
	"github.com/matzehuels/pebblecal/pkg/holidays"
	"github.com/matzehuels/pebblecal/pkg/pebble"
	"github.com/matzehuels/pebblecal/pkg/randstream"
	"github.com/matzehuels/pebblecal/pkg/render/styles"
)

// Config is the full run configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Canvas   CanvasConfig   `toml:"canvas"`
	Pebbles  PebblesConfig  `toml:"pebbles"`
	Emphasis EmphasisConfig `toml:"emphasis"`
	Output   OutputConfig   `toml:"output"`
}

// CalendarConfig selects the year and locale conventions.
type CalendarConfig struct {
	Year        int    `toml:"year"`
	Locale      string `toml:"locale"`
	SundayFirst bool   `toml:"sunday_first"`

	// Seed is the decimal placement seed. Empty means pick one at random.
	Seed string `toml:"seed"`
}

// CanvasConfig overrides the pebble region dimensions. Zero values keep the
// page geometry defaults.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// PebblesConfig tunes ornament placement.
type PebblesConfig struct {
	MinRadius       float64 `toml:"min_radius"`
	MaxRadius       float64 `toml:"max_radius"`
	Margin          float64 `toml:"margin"`
	MaxAttempts     int     `toml:"max_attempts"`
	ShrinkOnExhaust bool    `toml:"shrink_on_exhaust"`
	ShrinkFactor    float64 `toml:"shrink_factor"`
	MaxShrinks      int     `toml:"max_shrinks"`
}

// EmphasisConfig selects holiday calendars and explicit date overrides.
// Override dates are ISO "2006-01-02" strings.
type EmphasisConfig struct {
	BoldHolidays   []string `toml:"bold_holidays"`
	ItalicHolidays []string `toml:"italic_holidays"`
	BoldDates      []string `toml:"bold_dates"`
	ItalicDates    []string `toml:"italic_dates"`
}

// OutputConfig selects formats and destinations.
type OutputConfig struct {
	Formats  []string `toml:"formats"`
	Style    string   `toml:"style"`
	Dir      string   `toml:"dir"`
	Report   string   `toml:"report"`
	PNGScale float64  `toml:"png_scale"`
}

// Formats accepted in [output].
var validFormats = []string{"svg", "pdf", "png"}

// Default returns the configuration of the original printed calendar:
// Slovak locale, Czech holidays bold, Slovak holidays italic.
func Default() Config {
	return Config{
		Calendar: CalendarConfig{
			Year:   time.Now().Year(),
			Locale: "sk",
		},
		Pebbles: PebblesConfig{
			MinRadius:    12,
			MaxRadius:    20,
			Margin:       4,
			MaxAttempts:  200,
			ShrinkFactor: 0.8,
			MaxShrinks:   3,
		},
		Emphasis: EmphasisConfig{
			BoldHolidays:   []string{"cz"},
			ItalicHolidays: []string{"sk"},
		},
		Output: OutputConfig{
			Formats:  []string{"pdf"},
			Style:    "sketch",
			Dir:      "dist",
			Report:   "report.txt",
			PNGScale: 2.0,
		},
	}
}

// Load reads and validates a TOML config file. Values absent from the file
// keep the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeIOFailure, err, "read config %s", path)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against the registries it names. Errors are
// reported before any drawing happens.
func (c Config) Validate() error {
	if c.Calendar.Year < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "calendar.year %d out of range", c.Calendar.Year)
	}
	if _, err := calgrid.Lookup(c.Calendar.Locale); err != nil {
		return err
	}
	if c.Calendar.Seed != "" {
		if _, err := randstream.Parse(c.Calendar.Seed); err != nil {
			return err
		}
	}

	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas dimensions must not be negative")
	}

	if err := c.Pebbles.Constraints().Validate(); err != nil {
		return err
	}

	for _, code := range append(slices.Clone(c.Emphasis.BoldHolidays), c.Emphasis.ItalicHolidays...) {
		if _, err := holidays.Lookup(code); err != nil {
			return err
		}
	}
	for _, s := range append(slices.Clone(c.Emphasis.BoldDates), c.Emphasis.ItalicDates...) {
		if _, err := emphasis.ParseDate(s); err != nil {
			return err
		}
	}

	if _, err := styles.Lookup(c.Output.Style); err != nil {
		return err
	}
	for _, f := range c.Output.Formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
		}
	}
	if c.Output.PNGScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "output.png_scale must be positive")
	}
	return nil
}

// Constraints maps the pebble section onto placement constraints.
func (p PebblesConfig) Constraints() pebble.Constraints {
	return pebble.Constraints{
		MinRadius:       p.MinRadius,
		MaxRadius:       p.MaxRadius,
		Margin:          p.Margin,
		MaxAttempts:     p.MaxAttempts,
		ShrinkOnExhaust: p.ShrinkOnExhaust,
		ShrinkFactor:    p.ShrinkFactor,
		MaxShrinks:      p.MaxShrinks,
	}
}
