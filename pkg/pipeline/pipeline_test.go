package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pebblecal/pkg/cache"
	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/config"
	"github.com/matzehuels/pebblecal/pkg/errors"
	"github.com/matzehuels/pebblecal/pkg/pebble"
)

func testOptions() Options {
	return Options{
		Year:           2023,
		Locale:         "sk",
		Seed:           "1234",
		BoldHolidays:   []string{"cz"},
		ItalicHolidays: []string{"sk"},
		Formats:        []string{FormatSVG},
		Style:          "simple",
	}
}

func TestExecuteProducesAllMonths(t *testing.T) {
	runner := NewRunner(nil, nil)
	res, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}

	if res.RunID == "" {
		t.Error("missing run ID")
	}
	if got := res.Seed.String(); got != "1234" {
		t.Errorf("seed = %s, want 1234", got)
	}
	if failed := res.Failed(); len(failed) != 0 {
		t.Fatalf("failed months: %v", failed)
	}

	for i, m := range res.Months {
		want := time.Month(i + 1)
		if m.Month != want {
			t.Errorf("slot %d holds %v", i, m.Month)
		}
		if n := len(m.Page.Ornaments); n != calgrid.DaysIn(2023, want) {
			t.Errorf("%v: %d pebbles, want %d", want, n, calgrid.DaysIn(2023, want))
		}
		if len(m.Artifacts[FormatSVG]) == 0 {
			t.Errorf("%v: missing svg artifact", want)
		}
	}
	if res.Stats.Pebbles != 365 {
		t.Errorf("total pebbles = %d, want 365", res.Stats.Pebbles)
	}
}

func TestExecuteRecordsTimings(t *testing.T) {
	runner := NewRunner(nil, nil)

	res, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.TotalTime <= 0 {
		t.Errorf("TotalTime = %v, want > 0", res.Stats.TotalTime)
	}
	if res.Stats.RenderTime <= 0 {
		t.Errorf("RenderTime = %v, want > 0", res.Stats.RenderTime)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(nil, nil)

	run := func() *Result {
		res, err := runner.Execute(context.Background(), testOptions())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	first, second := run(), run()

	if first.RunID == second.RunID {
		t.Error("run IDs must differ between executions")
	}
	for i := range first.Months {
		a, b := first.Months[i].Artifacts[FormatSVG], second.Months[i].Artifacts[FormatSVG]
		if !bytes.Equal(a, b) {
			t.Errorf("month %d differs between runs with the same seed", i+1)
		}
	}

	var buf1, buf2 bytes.Buffer
	if err := first.Report.Write(&buf1); err != nil {
		t.Fatal(err)
	}
	if err := second.Report.Write(&buf2); err != nil {
		t.Fatal(err)
	}
	if buf1.String() != buf2.String() {
		t.Error("reports differ between runs with the same seed")
	}
}

func TestExecuteReportContents(t *testing.T) {
	runner := NewRunner(nil, nil)
	res, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := res.Report.Write(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "1234\n") {
		t.Errorf("report must open with the seed line:\n%s", out)
	}
	// July 5 is a public holiday in both calendars.
	if !strings.Contains(out, "2023-07-05 BOTH\n") {
		t.Errorf("missing shared holiday entry:\n%s", out)
	}
	// January 6 is Slovak only.
	if !strings.Contains(out, "2023-01-06 ITALIC\n") {
		t.Errorf("missing italic-only entry:\n%s", out)
	}
}

func TestExecuteAutoSeed(t *testing.T) {
	opts := testOptions()
	opts.Seed = ""

	runner := NewRunner(nil, nil)
	res, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Seed.String() == "" {
		t.Error("auto seed not reported")
	}
}

func TestExecuteDropsOutOfYearOverrides(t *testing.T) {
	opts := testOptions()
	opts.BoldDates = []string{"2022-12-31", "2023-03-15"}

	runner := NewRunner(nil, nil)
	res, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Dropped) != 1 || res.Dropped[0].String() != "2022-12-31" {
		t.Errorf("Dropped = %v", res.Dropped)
	}

	var buf bytes.Buffer
	if err := res.Report.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "2022-12-31") {
		t.Error("out-of-year override leaked into the report")
	}
	if !strings.Contains(buf.String(), "2023-03-15 BOLD\n") {
		t.Error("in-year override missing from the report")
	}
}

func TestExecuteRenderCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil)

	first, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Misses != 12 || first.CacheInfo.Hits != 0 {
		t.Errorf("cold run: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.Hits != 12 {
		t.Errorf("warm run: %+v", second.CacheInfo)
	}
	for i := range first.Months {
		if !bytes.Equal(first.Months[i].Artifacts[FormatSVG], second.Months[i].Artifacts[FormatSVG]) {
			t.Errorf("month %d cached artifact differs", i+1)
		}
	}
}

func TestExecutePlacementExhaustedFailsMonthOnly(t *testing.T) {
	opts := testOptions()
	opts.Canvas = pebble.Canvas{Width: 50, Height: 50}

	runner := NewRunner(nil, nil)
	res, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	failed := res.Failed()
	if len(failed) != 12 {
		t.Fatalf("failed = %d months, want 12", len(failed))
	}
	for _, m := range failed {
		if !errors.Is(m.Err, errors.ErrCodePlacementExhausted) {
			t.Errorf("%v: err = %v", m.Month, m.Err)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Locale != DefaultLocale || opts.Style != DefaultStyle {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Year == 0 || len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Canvas == (pebble.Canvas{}) {
		t.Error("canvas default not applied")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		code   errors.Code
	}{
		{"locale", func(o *Options) { o.Locale = "xx" }, errors.ErrCodeInvalidLocale},
		{"seed", func(o *Options) { o.Seed = "-1" }, errors.ErrCodeInvalidSeed},
		{"format", func(o *Options) { o.Formats = []string{"docx"} }, errors.ErrCodeInvalidFormat},
		{"style", func(o *Options) { o.Style = "baroque" }, errors.ErrCodeInvalidStyle},
		{"holidays", func(o *Options) { o.BoldHolidays = []string{"de"} }, errors.ErrCodeInvalidInput},
		{"override date", func(o *Options) { o.ItalicDates = []string{"not-a-date"} }, errors.ErrCodeInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.mutate(&opts)
			if err := opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Calendar.Year = 2024
	cfg.Calendar.Seed = "7"
	cfg.Canvas.Width = 400
	cfg.Canvas.Height = 250

	opts := FromConfig(cfg)
	if opts.Year != 2024 || opts.Seed != "7" {
		t.Errorf("calendar mapping: %+v", opts)
	}
	if opts.Canvas != (pebble.Canvas{Width: 400, Height: 250}) {
		t.Errorf("canvas mapping: %+v", opts.Canvas)
	}
	if opts.Style != "sketch" || opts.Constraints.MinRadius != 12 {
		t.Errorf("output mapping: %+v", opts)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("default config options invalid: %v", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	runner := NewRunner(nil, nil)
	res, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.txt")
	if err := WriteArtifacts(res, 2023, dir, reportPath); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	// 12 month files plus the report.
	if len(entries) != 13 {
		t.Fatalf("output entries = %d, want 13", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, "2023-07.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Júl 2023") {
		t.Error("month artifact missing its title")
	}

	rep, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(rep), "1234\n") {
		t.Errorf("report content:\n%s", rep)
	}
}
