package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/provider"
	"github.com/vgwingman/wingman/internal/route"
)

// answerSeries lists every known entry of a game series, preferring IGDB
// collections and falling back to a RAWG title search when IGDB has nothing.
func (s *Service) answerSeries(ctx context.Context, question string) string {
	series, ok := route.ExtractSeriesName(question)
	if !ok {
		return seriesNameUnparseable
	}

	var records []model.GameRecord
	if s.igdb != nil {
		recs, err := s.igdb.LookupSeries(ctx, series)
		if err != nil {
			s.log.Warn().Err(err).Str("series", series).Msg("igdb series lookup failed")
		} else {
			records = recs
		}
	}
	if len(records) == 0 && s.rawg != nil {
		recs, err := s.rawg.LookupSeries(ctx, series)
		if err != nil {
			s.log.Warn().Err(err).Str("series", series).Msg("rawg series lookup failed")
		} else {
			records = recs
		}
	}

	records = provider.FilterSeriesPrefix(records, series)
	if len(records) == 0 {
		return seriesNotFound
	}

	lines := make([]string, 0, len(records))
	for i, rec := range records {
		lines = append(lines, fmt.Sprintf("%d. %s (Released: %s, Platforms: %s)",
			i+1, rec.Title, releaseDateOrUnknown(rec.ReleaseDate), platformsOrUnknown(rec.Platforms)))
	}
	return strings.Join(lines, "\n")
}

func releaseDateOrUnknown(t *time.Time) string {
	if t == nil {
		return "Unknown release date"
	}
	return t.Format("1/2/2006")
}

func platformsOrUnknown(platforms []string) string {
	if len(platforms) == 0 {
		return "Unknown platforms"
	}
	return strings.Join(platforms, ", ")
}
