package calgrid

import (
	"testing"
	"time"

	"github.com/matzehuels/pebblecal/pkg/emphasis"
)

func enSpec(year int, month time.Month) MonthSpec {
	l, _ := Lookup("en")
	return l.Spec(year, month, false)
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.January, 31},
		{2023, time.February, 28},
		{2024, time.February, 29},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2023, time.April, 30},
		{2023, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestComposeDayCount(t *testing.T) {
	for year := 2020; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			cells, err := Compose(enSpec(year, month), emphasis.Rule{})
			if err != nil {
				t.Fatalf("Compose(%d, %v) failed: %v", year, month, err)
			}

			dated := 0
			for _, c := range cells {
				if !c.Blank {
					dated++
				}
			}
			if want := DaysIn(year, month); dated != want {
				t.Errorf("%d-%02d: %d dated cells, want %d", year, month, dated, want)
			}
			if len(cells)%Columns != 0 {
				t.Errorf("%d-%02d: grid length %d not aligned to weeks", year, month, len(cells))
			}
		}
	}
}

func TestComposeOrderingAndColumns(t *testing.T) {
	// July 2023 starts on a Saturday.
	cells, err := Compose(enSpec(2023, time.July), emphasis.Rule{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Monday-first: Saturday is column 5, so five leading blanks.
	for i := range 5 {
		if !cells[i].Blank {
			t.Fatalf("cell %d should be a leading blank", i)
		}
		if cells[i].Emphasis != emphasis.None {
			t.Errorf("blank cell %d carries emphasis %v", i, cells[i].Emphasis)
		}
	}
	if cells[5].Blank || cells[5].Date.Day != 1 {
		t.Fatalf("cell 5 should be July 1st, got %+v", cells[5])
	}
	if cells[5].Column != 5 {
		t.Errorf("July 1st column = %d, want 5 (Saturday)", cells[5].Column)
	}
	if !cells[5].Weekend {
		t.Error("July 1st 2023 is a Saturday, should be weekend")
	}

	// Dates ascend one per cell.
	day := 1
	for _, c := range cells {
		if c.Blank {
			continue
		}
		if c.Date.Day != day {
			t.Fatalf("dates out of order: got %d, want %d", c.Date.Day, day)
		}
		day++
	}
}

func TestComposeSundayFirst(t *testing.T) {
	l, _ := Lookup("en")
	spec := l.Spec(2023, time.July, true)

	cells, err := Compose(spec, emphasis.Rule{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	// Sunday-first: Saturday is column 6, so six leading blanks.
	if cells[6].Blank || cells[6].Date.Day != 1 {
		t.Fatalf("cell 6 should be July 1st, got %+v", cells[6])
	}
	if spec.WeekdayNames[0] != "Sun" || spec.WeekdayNames[6] != "Sat" {
		t.Errorf("Sunday-first weekday headers wrong: %v", spec.WeekdayNames)
	}
}

func TestComposeEmphasis(t *testing.T) {
	bold := emphasis.NewDate(2023, time.July, 5)
	italic := emphasis.NewDate(2023, time.July, 29)
	rule := emphasis.Rule{
		Bold:   emphasis.NewDateSet(bold),
		Italic: emphasis.NewDateSet(italic),
	}

	cells, err := Compose(enSpec(2023, time.July), rule)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for _, c := range cells {
		if c.Blank {
			continue
		}
		want := emphasis.None
		switch c.Date {
		case bold:
			want = emphasis.Bold
		case italic:
			want = emphasis.Italic
		}
		if c.Emphasis != want {
			t.Errorf("%v emphasis = %v, want %v", c.Date, c.Emphasis, want)
		}
	}
}

func TestComposeInvalidSpec(t *testing.T) {
	spec := enSpec(2023, time.July)
	spec.Month = 13
	if _, err := Compose(spec, emphasis.Rule{}); err == nil {
		t.Error("Compose should reject month 13")
	}
}

func TestWeeks(t *testing.T) {
	cells, err := Compose(enSpec(2024, time.February), emphasis.Rule{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	weeks := Weeks(cells)
	if len(weeks)*Columns != len(cells) {
		t.Fatalf("Weeks() lost cells: %d rows from %d cells", len(weeks), len(cells))
	}
	for i, w := range weeks {
		if len(w) != Columns {
			t.Errorf("week %d has %d cells", i, len(w))
		}
	}
}

func TestLookup(t *testing.T) {
	for _, code := range Codes() {
		l, err := Lookup(code)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", code, err)
		}
		if l.Code != code {
			t.Errorf("Lookup(%q).Code = %q", code, l.Code)
		}
	}

	if _, err := Lookup("xx"); err == nil {
		t.Error("Lookup should reject unknown locales")
	}
}

func TestLocaleTitles(t *testing.T) {
	sk, _ := Lookup("sk")
	spec := sk.Spec(2023, time.July, false)
	if got := spec.Title(); got != "Júl 2023" {
		t.Errorf("Title() = %q, want %q", got, "Júl 2023")
	}
}
