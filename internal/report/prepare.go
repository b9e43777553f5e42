// Package report renders family-name result sets as styled spreadsheets.
package report

import (
	"sort"
	"time"

	"github.com/JonMunkholm/deces/internal/core"
	"github.com/JonMunkholm/deces/internal/locale"
)

type nameKey struct {
	family string
	given  string
}

// Prepare orders records for rendering. Death dates are parsed back from
// their display form; records with an unparseable date sort first. The
// sort is stable and ascending, dates are re-rendered (unparseable ones
// become ""), and only the first record of each (family, given) name is
// kept. The input slice is not modified.
func Prepare(records []core.Record, cal *locale.Calendar) []core.Record {
	type keyed struct {
		rec  core.Record
		when time.Time
		ok   bool
	}

	rows := make([]keyed, len(records))
	for i, rec := range records {
		when, err := cal.Parse(rec.DeathDate)
		rows[i] = keyed{rec: rec, when: when, ok: err == nil}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ok != b.ok {
			return !a.ok
		}
		return a.when.Before(b.when)
	})

	out := make([]core.Record, 0, len(rows))
	seen := make(map[nameKey]bool, len(rows))
	for _, row := range rows {
		rec := row.rec
		if row.ok {
			rec.DeathDate = cal.Format(row.when)
		} else {
			rec.DeathDate = ""
		}

		key := nameKey{rec.FamilyName, rec.GivenName}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}
