package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/pebblecal/pkg/errors"
)

// WriteArtifacts writes every rendered month to dir and the emphasis report
// to reportPath. Month files are named "<year>-<month>.<format>", e.g.
// "2023-07.pdf". An empty reportPath skips the report.
//
// Months that failed are skipped; callers decide how to surface them.
func WriteArtifacts(res *Result, year int, dir, reportPath string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "create output dir %s", dir)
	}

	for _, m := range res.Months {
		if m.Err != nil {
			continue
		}
		for format, data := range m.Artifacts {
			name := fmt.Sprintf("%04d-%02d.%s", year, m.Month, format)
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
			}
		}
	}

	if reportPath != "" {
		if err := res.Report.WriteFile(reportPath); err != nil {
			return err
		}
	}
	return nil
}
