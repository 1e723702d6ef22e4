package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pebblecal/pkg/cache"
	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/errors"
	"github.com/matzehuels/pebblecal/pkg/holidays"
	"github.com/matzehuels/pebblecal/pkg/pebble"
	"github.com/matzehuels/pebblecal/pkg/randstream"
	"github.com/matzehuels/pebblecal/pkg/render"
	"github.com/matzehuels/pebblecal/pkg/render/page"
	"github.com/matzehuels/pebblecal/pkg/render/sink"
	"github.com/matzehuels/pebblecal/pkg/render/styles"
	"github.com/matzehuels/pebblecal/pkg/report"
)

// Runner encapsulates pipeline execution with render caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete place → compose → render pipeline for all
// twelve months of the target year.
//
// A month that exhausts its placement budget fails alone: its MonthResult
// carries the error while the remaining months finish normally. Execute
// returns an error only when the run as a whole cannot proceed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	seed, err := resolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID: uuid.NewString(),
		Seed:  seed,
	}
	logger.Info("starting run", "id", result.RunID, "year", opts.Year, "seed", seed)

	rule, dropped, err := buildRule(opts)
	if err != nil {
		return nil, err
	}
	result.Dropped = dropped
	for _, d := range dropped {
		logger.Warn("ignoring override date outside target year", "date", d, "year", opts.Year)
	}

	locale, err := calgrid.Lookup(opts.Locale)
	if err != nil {
		return nil, err
	}
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		wg sync.WaitGroup
		mu sync.Mutex // guards CacheInfo counters and Stats.RenderTime
	)
	for i := range result.Months {
		month := time.Month(i + 1)
		result.Months[i].Month = month

		wg.Add(1)
		go func(slot *MonthResult) {
			defer wg.Done()
			r.runMonth(ctx, slot, opts, seed, locale, rule, style, &mu, result)
		}(&result.Months[i])
	}
	wg.Wait()
	result.Stats.TotalTime = time.Since(start)

	grids := make([][]calgrid.DayCell, 0, 12)
	for _, m := range result.Months {
		if m.Err != nil {
			logger.Error("month failed", "month", m.Month, "err", m.Err)
			continue
		}
		result.Stats.Pebbles += len(m.Page.Ornaments)
		for _, week := range m.Page.Weeks {
			grids = append(grids, week)
		}
	}
	result.Report = report.Build(seed, grids...)
	result.Stats.Emphasized = len(result.Report.Entries)

	logger.Info("run complete",
		"months", 12-len(result.Failed()),
		"pebbles", result.Stats.Pebbles,
		"emphasized", result.Stats.Emphasized,
		"duration", result.Stats.TotalTime)

	return result, nil
}

// runMonth generates one month into slot. Errors stay in the slot.
func (r *Runner) runMonth(ctx context.Context, slot *MonthResult, opts Options, seed randstream.Seed,
	locale calgrid.Locale, rule emphasis.Rule, style styles.Style, mu *sync.Mutex, result *Result,
) {
	if err := ctx.Err(); err != nil {
		slot.Err = err
		return
	}

	stream := randstream.Derive(seed, randstream.MonthContext(int(slot.Month)))
	n := calgrid.DaysIn(opts.Year, slot.Month)
	orns, err := pebble.Place(n, opts.Canvas, opts.Constraints, stream)
	if err != nil {
		slot.Err = err
		return
	}

	spec := locale.Spec(opts.Year, slot.Month, opts.SundayFirst)
	cells, err := calgrid.Compose(spec, rule)
	if err != nil {
		slot.Err = err
		return
	}

	geo := page.DefaultGeometry()
	slot.Page = page.New(spec, cells, orns, opts.Canvas, geo)
	slot.Artifacts, err = r.renderPage(ctx, slot.Page, opts, style, mu, result)
	if err != nil {
		slot.Err = err
	}
}

// renderPage produces all requested formats for a page, consulting the
// render cache keyed by page content, format, style, and scale.
func (r *Runner) renderPage(ctx context.Context, p page.Page, opts Options, style styles.Style,
	mu *sync.Mutex, result *Result,
) (map[string][]byte, error) {
	start := time.Now()
	defer func() {
		mu.Lock()
		result.Stats.RenderTime += time.Since(start)
		mu.Unlock()
	}()

	data, err := p.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode page")
	}
	pageHash := cache.Hash(data)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte // rendered at most once per page

	for _, format := range opts.Formats {
		key := cache.PageKey(pageHash, cache.PageKeyOpts{
			Format: format,
			Style:  opts.Style,
			Scale:  opts.PNGScale,
		})
		if !opts.Refresh {
			if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = cached
				mu.Lock()
				result.CacheInfo.Hits++
				mu.Unlock()
				continue
			}
		}

		if svg == nil {
			svg = sink.RenderSVG(p, sink.WithStyle(style))
		}
		var out []byte
		switch format {
		case FormatSVG:
			out = svg
		case FormatPDF:
			out, err = render.ToPDF(svg)
		case FormatPNG:
			out, err = render.ToPNG(svg, opts.PNGScale)
		}
		if err != nil {
			return nil, err
		}
		artifacts[format] = out
		_ = r.Cache.Set(ctx, key, out, cache.TTLPage)
		mu.Lock()
		result.CacheInfo.Misses++
		mu.Unlock()
	}
	return artifacts, nil
}

// resolveSeed parses an explicit seed or picks a random one.
func resolveSeed(s string) (randstream.Seed, error) {
	if s == "" {
		return randstream.Auto()
	}
	return randstream.Parse(s)
}

// buildRule assembles the emphasis rule from holiday calendars and explicit
// overrides, restricted to the target year.
func buildRule(opts Options) (emphasis.Rule, []emphasis.Date, error) {
	rule := emphasis.Rule{
		Bold:           emphasis.NewDateSet(),
		Italic:         emphasis.NewDateSet(),
		OverrideBold:   emphasis.NewDateSet(),
		OverrideItalic: emphasis.NewDateSet(),
	}

	for _, code := range opts.BoldHolidays {
		set, err := holidays.Dates(code, opts.Year)
		if err != nil {
			return emphasis.Rule{}, nil, err
		}
		for d := range set {
			rule.Bold.Add(d)
		}
	}
	for _, code := range opts.ItalicHolidays {
		set, err := holidays.Dates(code, opts.Year)
		if err != nil {
			return emphasis.Rule{}, nil, err
		}
		for d := range set {
			rule.Italic.Add(d)
		}
	}

	for _, s := range opts.BoldDates {
		d, err := emphasis.ParseDate(s)
		if err != nil {
			return emphasis.Rule{}, nil, err
		}
		rule.OverrideBold.Add(d)
	}
	for _, s := range opts.ItalicDates {
		d, err := emphasis.ParseDate(s)
		if err != nil {
			return emphasis.Rule{}, nil, err
		}
		rule.OverrideItalic.Add(d)
	}

	kept, dropped := rule.FilterYear(opts.Year)
	return kept, dropped, nil
}
