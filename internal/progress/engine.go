// Package progress maintains per-user engagement counters and awards
// threshold achievements.
package progress

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/route"
	"github.com/vgwingman/wingman/internal/store"
)

// Notifier pushes award events to connected clients. Delivery is best-effort;
// the persisted achievement set stays the source of truth.
type Notifier interface {
	Broadcast(event string, payload interface{})
}

// EventAchievementEarned is the notification event name for award batches.
const EventAchievementEarned = "achievementEarned"

// AwardEvent is the payload broadcast when a user earns achievements.
type AwardEvent struct {
	UserID       string              `json:"userId"`
	Achievements []model.Achievement `json:"achievements"`
}

// Threshold ties a category counter to the achievement it unlocks.
type Threshold struct {
	Category string
	Count    int
	Name     string
}

// Thresholds is the award table, evaluated uniformly after every interaction.
// Grind-style categories require 10 questions; the rest unlock at 5.
var Thresholds = []Threshold{
	{route.CategoryRPGEnthusiast, 5, "RPG Enthusiast"},
	{route.CategoryBossBuster, 10, "Boss Buster"},
	{route.CategoryStrategySpecialist, 5, "Strategy Specialist"},
	{route.CategoryActionAficionado, 5, "Action Aficionado"},
	{route.CategoryBattleRoyale, 5, "Battle Royale Master"},
	{route.CategorySportsChampion, 5, "Sports Champion"},
	{route.CategoryAdventureAddict, 5, "Adventure Addict"},
	{route.CategoryShooterSpecialist, 5, "Shooter Specialist"},
	{route.CategoryPuzzlePro, 5, "Puzzle Pro"},
	{route.CategoryRacingPro, 5, "Racing Expert"},
	{route.CategoryStealthSpecialist, 5, "Stealth Specialist"},
	{route.CategoryHorrorHero, 5, "Horror Hero"},
	{route.CategoryTriviaMaster, 5, "Trivia Master"},
	{route.CategorySpeedrunner, 10, "Speedrunner"},
	{route.CategoryCollectorPro, 10, "Collector Pro"},
	{route.CategoryDataDiver, 10, "Data Diver"},
	{route.CategoryPerformanceTweaker, 10, "Performance Tweaker"},
}

// Evaluate returns the achievements newly unlocked by the given progress
// document: threshold reached and not already in the awarded set. Pure and
// safe to re-run; an achievement already held is never returned again.
func Evaluate(p *model.UserProgress, now time.Time) []model.Achievement {
	var batch []model.Achievement
	for _, th := range Thresholds {
		if p.Counters[th.Category] >= th.Count && !p.HasAchievement(th.Name) {
			batch = append(batch, model.Achievement{Name: th.Name, DateEarned: now})
		}
	}
	return batch
}

// Engine records interactions against the store and publishes award batches.
type Engine struct {
	store    store.Store
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewEngine(s store.Store, n Notifier, log zerolog.Logger) *Engine {
	return &Engine{store: s, notifier: n, log: log, now: time.Now}
}

// Record updates the user's progress for one interaction: the conversation
// counter always moves, the category counter moves when the question matches
// one, then the threshold table is evaluated. A non-empty batch is persisted
// and broadcast as exactly one event.
func (e *Engine) Record(ctx context.Context, userID, question string) ([]model.Achievement, error) {
	users := e.store.Users()

	if _, err := users.FindOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if err := users.IncrementConversationCount(ctx, userID); err != nil {
		return nil, err
	}
	if cat, ok := route.Categorize(question); ok {
		if err := users.IncrementCounter(ctx, userID, cat); err != nil {
			return nil, err
		}
	}

	p, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	batch := Evaluate(p, e.now().UTC())
	if len(batch) == 0 {
		return nil, nil
	}

	added, err := users.AppendAchievements(ctx, userID, batch)
	if err != nil {
		return nil, err
	}
	if added == 0 {
		// A concurrent request already awarded these; it also notified.
		return nil, nil
	}

	e.notifier.Broadcast(EventAchievementEarned, AwardEvent{UserID: userID, Achievements: batch})
	e.log.Info().Str("user", userID).Int("achievements", len(batch)).Msg("achievements awarded")
	return batch, nil
}
