// Package pipeline provides the core generation pipeline for pebblecal.
//
// A run proceeds in three stages for each of the twelve months:
//
//  1. Place: lay out one pebble per day of the month on the ornament canvas
//  2. Compose: build the day grid with locale names and emphasis flags
//  3. Render: serialize the page in the requested formats
//
// Month placement draws from independent derived streams, so the twelve
// months can run concurrently and still reproduce bit-identically for a
// given seed.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Year:   2023,
//	    Locale: "sk",
//	    Seed:   "1234",
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/config"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/errors"
	"github.com/matzehuels/pebblecal/pkg/holidays"
	"github.com/matzehuels/pebblecal/pkg/pebble"
	"github.com/matzehuels/pebblecal/pkg/randstream"
	"github.com/matzehuels/pebblecal/pkg/render/page"
	"github.com/matzehuels/pebblecal/pkg/render/styles"
	"github.com/matzehuels/pebblecal/pkg/report"
)

// Defaults applied by ValidateAndSetDefaults.
const (
	DefaultLocale   = "sk"
	DefaultStyle    = "sketch"
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization.
type Options struct {
	// Calendar options
	Year        int    `json:"year"`
	Locale      string `json:"locale,omitempty"`
	SundayFirst bool   `json:"sunday_first,omitempty"`

	// Seed is the decimal placement seed. Empty means pick one at random;
	// the chosen seed is reported in the Result.
	Seed string `json:"seed,omitempty"`

	// Emphasis options
	BoldHolidays   []string `json:"bold_holidays,omitempty"`
	ItalicHolidays []string `json:"italic_holidays,omitempty"`
	BoldDates      []string `json:"bold_dates,omitempty"`
	ItalicDates    []string `json:"italic_dates,omitempty"`

	// Placement options. Zero values take the page geometry defaults.
	Canvas      pebble.Canvas      `json:"canvas,omitempty"`
	Constraints pebble.Constraints `json:"constraints,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// FromConfig maps a loaded config file onto pipeline options.
func FromConfig(cfg config.Config) Options {
	opts := Options{
		Year:           cfg.Calendar.Year,
		Locale:         cfg.Calendar.Locale,
		SundayFirst:    cfg.Calendar.SundayFirst,
		Seed:           cfg.Calendar.Seed,
		BoldHolidays:   cfg.Emphasis.BoldHolidays,
		ItalicHolidays: cfg.Emphasis.ItalicHolidays,
		BoldDates:      cfg.Emphasis.BoldDates,
		ItalicDates:    cfg.Emphasis.ItalicDates,
		Constraints:    cfg.Pebbles.Constraints(),
		Formats:        cfg.Output.Formats,
		Style:          cfg.Output.Style,
		PNGScale:       cfg.Output.PNGScale,
	}
	if cfg.Canvas.Width > 0 && cfg.Canvas.Height > 0 {
		opts.Canvas = pebble.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}
	}
	return opts
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	if o.Year < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "year %d out of range", o.Year)
	}
	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if _, err := calgrid.Lookup(o.Locale); err != nil {
		return err
	}
	if o.Seed != "" {
		if _, err := randstream.Parse(o.Seed); err != nil {
			return err
		}
	}

	for _, code := range append(slices.Clone(o.BoldHolidays), o.ItalicHolidays...) {
		if _, err := holidays.Lookup(code); err != nil {
			return err
		}
	}
	for _, s := range append(slices.Clone(o.BoldDates), o.ItalicDates...) {
		if _, err := emphasis.ParseDate(s); err != nil {
			return err
		}
	}

	if o.Canvas == (pebble.Canvas{}) {
		o.Canvas = page.DefaultGeometry().PebbleCanvas()
	}
	if o.Constraints == (pebble.Constraints{}) {
		o.Constraints = pebble.DefaultConstraints
	}
	if err := o.Constraints.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, pdf, png)", f)
		}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if _, err := styles.Lookup(o.Style); err != nil {
		return err
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Seed is the placement seed the run actually used.
	Seed randstream.Seed

	// Months holds one entry per calendar month, January first.
	Months [12]MonthResult

	// Report is the emphasis report for the whole year.
	Report report.Record

	// Dropped lists override dates that fell outside the target year.
	Dropped []emphasis.Date

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks render cache hits.
	CacheInfo CacheInfo
}

// Failed returns the months that could not be generated.
func (r *Result) Failed() []MonthResult {
	var failed []MonthResult
	for _, m := range r.Months {
		if m.Err != nil {
			failed = append(failed, m)
		}
	}
	return failed
}

// MonthResult is the outcome for a single month.
type MonthResult struct {
	Month time.Month

	// Page is the composed month, set when Err is nil.
	Page page.Page

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Err is set when this month failed; the other months are unaffected.
	Err error
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pebbles    int // total ornaments placed
	Emphasized int // report entries

	// TotalTime is the wall time spent generating all months.
	TotalTime time.Duration

	// RenderTime is the time spent rendering artifacts, summed across
	// months. Concurrent months overlap, so it can exceed TotalTime.
	RenderTime time.Duration
}

// CacheInfo tracks render cache hits.
type CacheInfo struct {
	Hits   int
	Misses int
}
