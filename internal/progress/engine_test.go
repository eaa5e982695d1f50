package progress

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
)

// fakeStore is an in-memory Users implementation sufficient for the engine.
type fakeStore struct {
	users map[string]*model.UserProgress
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*model.UserProgress{}}
}

func (f *fakeStore) Questions() store.Questions { return nil }

func (f *fakeStore) Users() store.Users { return f }

func (f *fakeStore) HealthPing(ctx context.Context) error { return nil }

func (f *fakeStore) FindOrCreate(ctx context.Context, userID string) (*model.UserProgress, error) {
	if p, ok := f.users[userID]; ok {
		return p, nil
	}
	p := &model.UserProgress{UserID: userID, Counters: store.ZeroCounters(), CreatedAt: time.Now().UTC()}
	f.users[userID] = p
	return p, nil
}

func (f *fakeStore) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	p, ok := f.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*model.UserProgress, error) {
	return nil, model.ErrNotFound
}

func (f *fakeStore) IncrementConversationCount(ctx context.Context, userID string) error {
	f.users[userID].ConversationCount++
	return nil
}

func (f *fakeStore) IncrementCounter(ctx context.Context, userID, category string) error {
	f.users[userID].Counters[category]++
	return nil
}

func (f *fakeStore) AppendAchievements(ctx context.Context, userID string, batch []model.Achievement) (int, error) {
	p := f.users[userID]
	added := 0
	for _, a := range batch {
		if !p.HasAchievement(a.Name) {
			p.Achievements = append(p.Achievements, a)
			added++
		}
	}
	return added, nil
}

func (f *fakeStore) UpsertAccount(ctx context.Context, p *model.UserProgress) (*model.UserProgress, error) {
	f.users[p.UserID] = p
	return p, nil
}

type fakeNotifier struct {
	events []AwardEvent
}

func (n *fakeNotifier) Broadcast(event string, payload interface{}) {
	n.events = append(n.events, payload.(AwardEvent))
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	p := &model.UserProgress{Counters: store.ZeroCounters()}
	assert.Empty(t, Evaluate(p, now))

	p.Counters["puzzlePro"] = 5
	batch := Evaluate(p, now)
	require.Len(t, batch, 1)
	assert.Equal(t, "Puzzle Pro", batch[0].Name)
	assert.Equal(t, now, batch[0].DateEarned)

	// Grind categories need 10.
	p.Counters["bossBuster"] = 9
	assert.Len(t, Evaluate(p, now), 1)
	p.Counters["bossBuster"] = 10
	assert.Len(t, Evaluate(p, now), 2)

	// Already-held achievements never come back.
	p.Achievements = append(p.Achievements, model.Achievement{Name: "Puzzle Pro", DateEarned: now})
	batch = Evaluate(p, now)
	require.Len(t, batch, 1)
	assert.Equal(t, "Boss Buster", batch[0].Name)
}

func TestEngineRecordAwardsOnThreshold(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	n := &fakeNotifier{}
	e := NewEngine(st, n, zerolog.Nop())

	// Four strategy questions: counter moves, nothing awarded yet.
	for i := 0; i < 4; i++ {
		batch, err := e.Record(ctx, "u1", "Best strategy for this map?")
		require.NoError(t, err)
		assert.Empty(t, batch)
	}
	assert.Empty(t, n.events)

	// The fifth crosses the threshold: exactly one event, one achievement.
	batch, err := e.Record(ctx, "u1", "Another strategy question")
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Strategy Specialist", batch[0].Name)
	require.Len(t, n.events, 1)
	assert.Equal(t, "u1", n.events[0].UserID)
	require.Len(t, n.events[0].Achievements, 1)

	// A sixth match neither re-awards nor re-notifies.
	batch, err = e.Record(ctx, "u1", "strategy again")
	require.NoError(t, err)
	assert.Empty(t, batch)
	assert.Len(t, n.events, 1)

	p, err := st.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, p.ConversationCount)
	assert.Equal(t, 6, p.Counters["strategySpecialist"])
	assert.Len(t, p.Achievements, 1)
}

func TestEngineRecordUncategorized(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	e := NewEngine(st, &fakeNotifier{}, zerolog.Nop())

	batch, err := e.Record(ctx, "u2", "Hello there")
	require.NoError(t, err)
	assert.Empty(t, batch)

	p, err := st.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ConversationCount)
	for cat, v := range p.Counters {
		assert.Zero(t, v, cat)
	}
}
