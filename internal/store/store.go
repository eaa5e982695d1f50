package store

import (
	"context"

	"github.com/vgwingman/wingman/internal/model"
)

// Store exposes persistence operations required by the assistant pipeline.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Questions() Questions
	Users() Users
	// HealthPing reports database connectivity.
	HealthPing(ctx context.Context) error
}

type Questions interface {
	Create(ctx context.Context, q *model.Question) (*model.Question, error)
	// ListByUser returns the user's questions newest first.
	ListByUser(ctx context.Context, userID string) ([]*model.Question, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	Delete(ctx context.Context, id string) error
}

// Users manages per-user progress documents. Counter increments and
// achievement appends must be single atomic statements, not read-modify-write
// round trips; the achievement engine's idempotence depends on it.
type Users interface {
	FindOrCreate(ctx context.Context, userID string) (*model.UserProgress, error)
	Get(ctx context.Context, userID string) (*model.UserProgress, error)
	GetByEmail(ctx context.Context, email string) (*model.UserProgress, error)
	IncrementConversationCount(ctx context.Context, userID string) error
	IncrementCounter(ctx context.Context, userID, category string) error
	// AppendAchievements inserts the batch, silently skipping names the user
	// already holds, and returns how many rows were actually added.
	AppendAchievements(ctx context.Context, userID string, batch []model.Achievement) (int, error)
	// UpsertAccount creates or updates the account-level sync fields.
	UpsertAccount(ctx context.Context, p *model.UserProgress) (*model.UserProgress, error)
}
