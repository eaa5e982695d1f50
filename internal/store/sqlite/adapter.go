package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
)

// New opens a SQLite-backed store at path and bootstraps the schema.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires the store onto an existing connection (used by tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Questions() store.Questions { return &questions{db: s.db} }
func (s *sqliteStore) Users() store.Users         { return &users{db: s.db} }

// HealthPing reports database connectivity.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Questions ---

type questions struct{ db *sql.DB }

func (q *questions) Create(ctx context.Context, m *model.Question) (*model.Question, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO Questions (QuestionId, UserId, Question, Answer, CreationTime) VALUES (?,?,?,?,?)`,
		id, m.UserID, m.Question, m.Answer, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreatedAt = now
	return &out, nil
}

func (q *questions) ListByUser(ctx context.Context, userID string) ([]*model.Question, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT QuestionId, UserId, Question, Answer, CreationTime FROM Questions WHERE UserId = ? ORDER BY CreationTime DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Question
	for rows.Next() {
		var m model.Question
		if err := rows.Scan(&m.ID, &m.UserID, &m.Question, &m.Answer, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (q *questions) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var m model.Question
	row := q.db.QueryRowContext(ctx,
		`SELECT QuestionId, UserId, Question, Answer, CreationTime FROM Questions WHERE QuestionId = ?`, id)
	if err := row.Scan(&m.ID, &m.UserID, &m.Question, &m.Answer, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (q *questions) Delete(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM Questions WHERE QuestionId = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) FindOrCreate(ctx context.Context, userID string) (*model.UserProgress, error) {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO Users (UserId, CreationTime) VALUES (?,?) ON CONFLICT(UserId) DO NOTHING`,
		userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

func (u *users) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT UserId, Email, ConversationCount, IsApproved, HasProAccess, WaitlistPosition, CreationTime FROM Users WHERE UserId = ?`,
		userID)
	return u.scanProgress(ctx, row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.UserProgress, error) {
	row := u.db.QueryRowContext(ctx,
		`SELECT UserId, Email, ConversationCount, IsApproved, HasProAccess, WaitlistPosition, CreationTime FROM Users WHERE Email = ?`,
		email)
	return u.scanProgress(ctx, row)
}

func (u *users) scanProgress(ctx context.Context, row *sql.Row) (*model.UserProgress, error) {
	var p model.UserProgress
	if err := row.Scan(&p.UserID, &p.Email, &p.ConversationCount, &p.IsApproved, &p.HasProAccess, &p.WaitlistPosition, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	p.Counters = store.ZeroCounters()
	rows, err := u.db.QueryContext(ctx, `SELECT Category, Count FROM UserCounters WHERE UserId = ?`, p.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		p.Counters[cat] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	arows, err := u.db.QueryContext(ctx,
		`SELECT Name, DateEarned FROM UserAchievements WHERE UserId = ? ORDER BY DateEarned ASC, Name ASC`, p.UserID)
	if err != nil {
		return nil, err
	}
	defer arows.Close()
	p.Achievements = []model.Achievement{}
	for arows.Next() {
		var a model.Achievement
		if err := arows.Scan(&a.Name, &a.DateEarned); err != nil {
			return nil, err
		}
		p.Achievements = append(p.Achievements, a)
	}
	return &p, arows.Err()
}

func (u *users) IncrementConversationCount(ctx context.Context, userID string) error {
	_, err := u.db.ExecContext(ctx,
		`UPDATE Users SET ConversationCount = ConversationCount + 1 WHERE UserId = ?`, userID)
	return err
}

func (u *users) IncrementCounter(ctx context.Context, userID, category string) error {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO UserCounters (UserId, Category, Count) VALUES (?,?,1)
         ON CONFLICT(UserId, Category) DO UPDATE SET Count = Count + 1`,
		userID, category)
	return err
}

func (u *users) AppendAchievements(ctx context.Context, userID string, batch []model.Achievement) (int, error) {
	added := 0
	for _, a := range batch {
		res, err := u.db.ExecContext(ctx,
			`INSERT INTO UserAchievements (UserId, Name, DateEarned) VALUES (?,?,?)
             ON CONFLICT(UserId, Name) DO NOTHING`,
			userID, a.Name, a.DateEarned.UTC())
		if err != nil {
			return added, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}

func (u *users) UpsertAccount(ctx context.Context, p *model.UserProgress) (*model.UserProgress, error) {
	_, err := u.db.ExecContext(ctx,
		`INSERT INTO Users (UserId, Email, IsApproved, HasProAccess, WaitlistPosition, CreationTime)
         VALUES (?,?,?,?,?,?)
         ON CONFLICT(UserId) DO UPDATE SET
             Email = excluded.Email,
             IsApproved = excluded.IsApproved,
             HasProAccess = excluded.HasProAccess,
             WaitlistPosition = excluded.WaitlistPosition`,
		p.UserID, p.Email, p.IsApproved, p.HasProAccess, p.WaitlistPosition, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, p.UserID)
}
