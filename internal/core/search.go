package core

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/JonMunkholm/deces/internal/logging"
)

// Searcher finds the records of one family name across all source files.
type Searcher struct {
	source      Source
	transformer *Transformer
}

// NewSearcher creates a searcher over source.
func NewSearcher(source Source, transformer *Transformer) *Searcher {
	return &Searcher{source: source, transformer: transformer}
}

// Search scans every table for rows whose family-name segment equals
// familyName case-insensitively, and transforms them.
//
// Results keep file order, then row order. A file whose matches are all
// empty records is dropped. Files without a name column are skipped with
// a warning. The returned error is non-nil only when the source itself
// fails or ctx is cancelled.
func (s *Searcher) Search(ctx context.Context, familyName string) (ResultSet, error) {
	logger := logging.FromContext(ctx)
	rs := ResultSet{FamilyName: familyName}

	tables, err := s.source.Tables(ctx)
	if err != nil {
		return rs, err
	}

	// Casers carry state, so each search gets its own.
	fold := cases.Fold()
	target := fold.String(strings.TrimSpace(familyName))

	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return rs, fmt.Errorf("search cancelled: %w", err)
		}

		if !table.HasColumn(ColNomPrenom) {
			logger.Warn("skipping source file",
				"path", table.Path,
				"code", Describe(ErrMissingColumn).Code,
				"error", fmt.Errorf("%w %q", ErrMissingColumn, ColNomPrenom),
			)
			continue
		}

		var matched []Record
		for i := 0; i < table.Len(); i++ {
			raw := table.Record(i)
			family, _ := SplitName(raw.Value(ColNomPrenom))
			if fold.String(family) != target {
				continue
			}

			rec, err := s.transformer.Transform(raw)
			if err != nil {
				logger.Warn("record degraded",
					"path", table.Path,
					"line", i+2,
					"policy", s.transformer.policy.String(),
					"code", Describe(err).Code,
					"error", err,
				)
			}
			matched = append(matched, rec)
		}

		if allEmpty(matched) {
			continue
		}
		logger.Debug("matches in file", "path", table.Path, "records", len(matched))
		rs.Records = append(rs.Records, matched...)
	}

	return rs, nil
}

// allEmpty reports whether records is empty or holds only empty records.
func allEmpty(records []Record) bool {
	for _, r := range records {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}
