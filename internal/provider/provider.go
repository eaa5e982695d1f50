// Package provider defines the lookup contract shared by the game-information
// adapters and the normalization rules applied to their results.
package provider

import (
	"context"
	"strings"

	"github.com/vgwingman/wingman/internal/model"
)

// Lookup is implemented by every game-information adapter. A miss, as well as
// any transport or parse failure, is reported as model.ErrNotFound; adapters
// never surface upstream errors to callers.
type Lookup interface {
	Lookup(ctx context.Context, query string) (*model.GameRecord, error)
}

// SeriesLookup returns every record an adapter associates with a series name.
type SeriesLookup interface {
	LookupSeries(ctx context.Context, series string) ([]model.GameRecord, error)
}

// Normalize lowercases and trims a title for comparison. All title matching
// and deduplication in the system goes through this.
func Normalize(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// TitlesMatch reports whether a record title equals or contains the query,
// after normalization.
func TitlesMatch(query, recordTitle string) bool {
	q, r := Normalize(query), Normalize(recordTitle)
	if q == "" {
		return false
	}
	return r == q || strings.Contains(r, q)
}

// FilterSeriesPrefix keeps only records whose normalized name starts with the
// normalized series name. The prefix rule is deliberately strict: substring
// matches are excluded at this stage.
func FilterSeriesPrefix(games []model.GameRecord, series string) []model.GameRecord {
	prefix := Normalize(series)
	out := make([]model.GameRecord, 0, len(games))
	for _, g := range games {
		if strings.HasPrefix(Normalize(g.Title), prefix) {
			out = append(out, g)
		}
	}
	return out
}

// JoinOrUnknown joins names with ", ", or returns the unknown sentinel when
// the list is empty so formatted output stays total.
func JoinOrUnknown(names []string, unknown string) string {
	if len(names) == 0 {
		return unknown
	}
	return strings.Join(names, ", ")
}
