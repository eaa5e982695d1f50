package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/provider"
	"github.com/vgwingman/wingman/internal/route"
)

// Answers under this length are considered incomplete enough to augment with
// provider data; longer ones are left alone to avoid redundant lookups.
const shortAnswerLimit = 150

// augment merges provider lookups into the primary answer under the inclusion
// policy. Lookups run concurrently; blocks are concatenated in fixed
// Local -> IGDB -> RAWG order regardless of completion order. Any failure in
// this stage falls back to the primary answer plus a fixed notice -- the user
// always gets an answer.
func (s *Service) augment(ctx context.Context, question, primary string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("aggregation failed")
			result = primary + aggregationNotice
		}
	}()

	title := route.ExtractReleaseTitle(question)

	localRow, localOK := s.local.Lookup(title)

	var (
		wg        sync.WaitGroup
		igdbBlock string
		rawgBlock string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if rec, err := s.igdb.Lookup(ctx, title); err == nil {
			igdbBlock = formatIGDB(rec)
		}
	}()
	go func() {
		defer wg.Done()
		if rec, err := s.rawg.Lookup(ctx, title); err == nil {
			rawgBlock = formatRAWG(rec)
		}
	}()
	wg.Wait()

	short := len(primary) < shortAnswerLimit
	relevant := localOK ||
		containsFold(igdbBlock, title) ||
		containsFold(rawgBlock, title)
	if !short || !relevant {
		return primary
	}

	var b strings.Builder
	b.WriteString(primary)
	b.WriteString("\n\nAdditional Information:\nGame Information:\n")
	if localOK {
		b.WriteString("\nLocal Database: " + localRow.Describe())
	}
	if igdbBlock != "" {
		b.WriteString("\nFrom IGDB: " + igdbBlock)
	}
	if rawgBlock != "" {
		b.WriteString("\nFrom RAWG: " + rawgBlock)
	}
	return b.String()
}

func containsFold(s, sub string) bool {
	if s == "" || sub == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// formatIGDB renders the full structured block for an IGDB record.
func formatIGDB(rec *model.GameRecord) string {
	return rec.Title +
		" (Released: " + formatDate(rec.ReleaseDate) +
		", Genres: " + provider.JoinOrUnknown(rec.Genres, "unknown genres") +
		", Platforms: " + provider.JoinOrUnknown(rec.Platforms, "unknown platforms") +
		", Developers: " + provider.JoinOrUnknown(rec.Developers, "unknown developers") +
		", Publishers: " + provider.JoinOrUnknown(rec.Publishers, "unknown publishers") +
		", URL: " + urlOrUnavailable(rec.URL) + ")"
}

// formatRAWG renders the community-database block; RAWG carries no company data.
func formatRAWG(rec *model.GameRecord) string {
	return rec.Title +
		" (Released: " + formatDate(rec.ReleaseDate) +
		", Genres: " + provider.JoinOrUnknown(rec.Genres, "unknown genres") +
		", Platforms: " + provider.JoinOrUnknown(rec.Platforms, "unknown platforms") +
		", URL: " + urlOrUnavailable(rec.URL) + ")"
}

// formatDate renders a release date as M/D/YYYY, or "N/A" when unknown.
func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("1/2/2006")
}

func urlOrUnavailable(u string) string {
	if u == "" {
		return "URL not available"
	}
	return u
}
