package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/route"
	"github.com/vgwingman/wingman/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore should provide a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	userID := "u-" + uuid.New().String()

	// Users: first touch creates a zeroed progress document.
	p, err := s.Users().FindOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if p.ConversationCount != 0 || len(p.Achievements) != 0 {
		t.Fatalf("new progress not zeroed: %+v", p)
	}
	for _, cat := range route.Categories() {
		if n, ok := p.Counters[cat]; !ok || n != 0 {
			t.Fatalf("counter %q not initialized to zero", cat)
		}
	}

	// FindOrCreate is idempotent.
	if _, err := s.Users().FindOrCreate(ctx, userID); err != nil {
		t.Fatalf("FindOrCreate twice: %v", err)
	}

	// Questions: create then list newest-first.
	q1, err := s.Questions().Create(ctx, &model.Question{UserID: userID, Question: "first", Answer: "a1"})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	time.Sleep(10 * time.Millisecond) // distinct creation instants
	q2, err := s.Questions().Create(ctx, &model.Question{UserID: userID, Question: "second", Answer: "a2"})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	list, err := s.Questions().ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != q2.ID || list[1].ID != q1.ID {
		t.Fatalf("expected newest-first [%s %s], got %+v", q2.ID, q1.ID, list)
	}

	// Delete removes a question from the list.
	if err := s.Questions().Delete(ctx, q1.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if _, err := s.Questions().GetByID(ctx, q1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("deleted question still retrievable: %v", err)
	}
	list, err = s.Questions().ListByUser(ctx, userID)
	if err != nil || len(list) != 1 || list[0].ID != q2.ID {
		t.Fatalf("list after delete: %+v err=%v", list, err)
	}
	if err := s.Questions().Delete(ctx, q1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("double delete should be ErrNotFound, got %v", err)
	}

	// Counters: atomic increments accumulate.
	for i := 0; i < 3; i++ {
		if err := s.Users().IncrementCounter(ctx, userID, route.CategoryPuzzlePro); err != nil {
			t.Fatalf("IncrementCounter: %v", err)
		}
	}
	if err := s.Users().IncrementConversationCount(ctx, userID); err != nil {
		t.Fatalf("IncrementConversationCount: %v", err)
	}
	p, err = s.Users().Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Counters[route.CategoryPuzzlePro] != 3 {
		t.Fatalf("puzzlePro counter = %d, want 3", p.Counters[route.CategoryPuzzlePro])
	}
	if p.ConversationCount != 1 {
		t.Fatalf("conversation count = %d, want 1", p.ConversationCount)
	}

	// Achievements: append is idempotent per name.
	batch := []model.Achievement{{Name: "Puzzle Pro", DateEarned: time.Now().UTC()}}
	added, err := s.Users().AppendAchievements(ctx, userID, batch)
	if err != nil || added != 1 {
		t.Fatalf("AppendAchievements first: added=%d err=%v", added, err)
	}
	added, err = s.Users().AppendAchievements(ctx, userID, batch)
	if err != nil || added != 0 {
		t.Fatalf("AppendAchievements replay: added=%d err=%v", added, err)
	}
	p, err = s.Users().Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(p.Achievements) != 1 || p.Achievements[0].Name != "Puzzle Pro" {
		t.Fatalf("achievements = %+v, want single Puzzle Pro", p.Achievements)
	}

	// Account upsert populates sync fields and is readable by email.
	email := userID + "@example.test"
	pos := 7
	acct := &model.UserProgress{UserID: userID, Email: &email, IsApproved: true, HasProAccess: true, WaitlistPosition: &pos}
	up, err := s.Users().UpsertAccount(ctx, acct)
	if err != nil {
		t.Fatalf("UpsertAccount: %v", err)
	}
	if up.Email == nil || *up.Email != email || !up.IsApproved || !up.HasProAccess {
		t.Fatalf("upserted account mismatch: %+v", up)
	}
	// Upsert preserves accumulated progress.
	if up.ConversationCount != 1 || up.Counters[route.CategoryPuzzlePro] != 3 {
		t.Fatalf("upsert clobbered progress: %+v", up)
	}
	byEmail, err := s.Users().GetByEmail(ctx, email)
	if err != nil || byEmail.UserID != userID {
		t.Fatalf("GetByEmail: got=%+v err=%v", byEmail, err)
	}

	// Unknown user lookups are ErrNotFound.
	if _, err := s.Users().Get(ctx, "nobody-"+uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("unknown user should be ErrNotFound, got %v", err)
	}
}
