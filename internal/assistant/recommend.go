package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/route"
)

// categoryGenres maps achievement categories onto provider genre slugs for
// the recommendation search.
var categoryGenres = map[string]string{
	route.CategoryRPGEnthusiast:      "role-playing-games-rpg",
	route.CategoryBossBuster:         "action",
	route.CategoryStrategySpecialist: "strategy",
	route.CategoryActionAficionado:   "action",
	route.CategoryBattleRoyale:       "shooter",
	route.CategorySportsChampion:     "sports",
	route.CategoryAdventureAddict:    "adventure",
	route.CategoryShooterSpecialist:  "shooter",
	route.CategoryPuzzlePro:          "puzzle",
	route.CategoryRacingPro:          "racing",
	route.CategoryStealthSpecialist:  "action",
	route.CategoryHorrorHero:         "adventure",
	route.CategoryTriviaMaster:       "board-games",
	route.CategorySpeedrunner:        "platformer",
	route.CategoryCollectorPro:       "adventure",
	route.CategoryDataDiver:          "strategy",
	route.CategoryPerformanceTweaker: "simulation",
}

// RankCategories counts achievement-category hits across the questions and
// returns the categories most-frequent first. Ties keep first-encounter
// order, so repeated runs over the same history are stable.
func RankCategories(questions []string) []string {
	counts := map[string]int{}
	var order []string
	for _, q := range questions {
		cat, ok := route.Categorize(q)
		if !ok {
			continue
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	// Insertion sort keeps the scan order for equal counts.
	ranked := make([]string, 0, len(order))
	for _, cat := range order {
		i := len(ranked)
		for i > 0 && counts[ranked[i-1]] < counts[cat] {
			i--
		}
		ranked = append(ranked, "")
		copy(ranked[i+1:], ranked[i:])
		ranked[i] = cat
	}
	return ranked
}

// answerRecommendation ranks the user's question history by category and
// turns the top category into a genre-filtered provider search.
func (s *Service) answerRecommendation(ctx context.Context, userID string) (string, error) {
	prior, err := s.store.Questions().ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(prior))
	for _, q := range prior {
		texts = append(texts, q.Question)
	}
	ranked := RankCategories(texts)
	if len(ranked) == 0 {
		return noRecommendations, nil
	}

	genre := categoryGenres[ranked[0]]
	names, err := s.rec.Recommend(ctx, genre)
	if err != nil || len(names) == 0 {
		if err != nil && !isNotFound(err) {
			s.log.Warn().Err(err).Str("genre", genre).Msg("recommendation lookup failed")
		}
		return noRecommendations, nil
	}
	return "Based on your previous questions, I recommend these games: " + strings.Join(names, ", ") + ".", nil
}

func isNotFound(err error) bool { return errors.Is(err, model.ErrNotFound) }
