// Package report writes the per-run reproducibility artifact.
//
// The report is a small plain-text file: the seed on the first line, then one
// line per emphasized date in ascending order. Together with the immutable
// configuration it is enough to reproduce a run's output byte for byte, which
// is the whole point — the seed of a print run that came out well must never
// be lost.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/pebblecal/pkg/calgrid"
	"github.com/matzehuels/pebblecal/pkg/emphasis"
	"github.com/matzehuels/pebblecal/pkg/errors"
	"github.com/matzehuels/pebblecal/pkg/randstream"
)

// Entry is one emphasized date.
type Entry struct {
	Date emphasis.Date
	Flag emphasis.Flag
}

// Record is the report content for one run. Created once per run, written,
// then discarded.
type Record struct {
	Seed    randstream.Seed
	Entries []Entry
}

// Build collects the emphasized dates from composed grids into a record.
// Cells with no emphasis and blank cells are skipped; entries are ordered
// ascending by date regardless of the order grids are passed in.
func Build(seed randstream.Seed, grids ...[]calgrid.DayCell) Record {
	rec := Record{Seed: seed}
	for _, cells := range grids {
		for _, c := range cells {
			if c.Blank || c.Emphasis == emphasis.None {
				continue
			}
			rec.Entries = append(rec.Entries, Entry{Date: c.Date, Flag: c.Emphasis})
		}
	}
	slices.SortFunc(rec.Entries, func(a, b Entry) int {
		return a.Date.Compare(b.Date)
	})
	return rec
}

// Write serializes the record to w: seed line first, then one
// "<ISO date> <FLAG>" line per entry, no trailing content after the last
// line. The record is rendered to a buffer first so a failing writer never
// receives a partial report.
func (r Record) Write(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", r.Seed)
	for _, e := range r.Entries {
		fmt.Fprintf(&buf, "%s %s\n", e.Date, e.Flag)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "write report")
	}
	return nil
}

// WriteFile atomically writes the record to path: the content goes to a
// temporary file in the destination directory first and is renamed into
// place, so a crashed or failed run never leaves a partial report behind.
func (r Record) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "open report %s", path)
	}

	if err := r.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeIOFailure, err, "flush report %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeIOFailure, err, "replace report %s", path)
	}
	return nil
}

// Parse reads a report artifact back into a record. Used for auditing a past
// run and by the round-trip tests.
func Parse(r io.Reader) (Record, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return Record{}, errors.New(errors.ErrCodeInvalidInput, "report is empty")
	}
	seed, err := randstream.Parse(strings.TrimSpace(sc.Text()))
	if err != nil {
		return Record{}, err
	}

	rec := Record{Seed: seed}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return Record{}, errors.New(errors.ErrCodeInvalidInput, "malformed report line %q", line)
		}
		date, err := emphasis.ParseDate(fields[0])
		if err != nil {
			return Record{}, err
		}
		flag, err := emphasis.ParseFlag(fields[1])
		if err != nil {
			return Record{}, err
		}
		rec.Entries = append(rec.Entries, Entry{Date: date, Flag: flag})
	}
	if err := sc.Err(); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeIOFailure, err, "read report")
	}
	return rec, nil
}
