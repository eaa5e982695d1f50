package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Questions() store.Questions { return &questions{db: s.db} }
func (s *pgStore) Users() store.Users         { return &users{db: s.db} }

// HealthPing reports database connectivity.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Questions ---

type questions struct{ db *sql.DB }

func (q *questions) Create(ctx context.Context, m *model.Question) (*model.Question, error) {
	id := m.ID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := q.db.QueryRowContext(ctx, `
        INSERT INTO questions (question_id, user_id, question, answer)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, m.UserID, m.Question, m.Answer)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreatedAt = created
	return &out, nil
}

func (q *questions) ListByUser(ctx context.Context, userID string) ([]*model.Question, error) {
	rows, err := q.db.QueryContext(ctx, `
        SELECT question_id, user_id, question, answer, creation_time
        FROM questions WHERE user_id=$1 ORDER BY creation_time DESC
    `, userID)
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
	row := q.db.QueryRowContext(ctx, `
        SELECT question_id, user_id, question, answer, creation_time
        FROM questions WHERE question_id=$1
    `, id)
	if err := row.Scan(&m.ID, &m.UserID, &m.Question, &m.Answer, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (q *questions) Delete(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM questions WHERE question_id=$1`, id)
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
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id) VALUES ($1)
        ON CONFLICT (user_id) DO NOTHING
    `, userID)
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, userID)
}

func (u *users) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, conversation_count, is_approved, has_pro_access, waitlist_position, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	return u.scanProgress(ctx, row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.UserProgress, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, conversation_count, is_approved, has_pro_access, waitlist_position, creation_time
        FROM users WHERE email=$1
    `, email)
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
	rows, err := u.db.QueryContext(ctx, `SELECT category, count FROM user_counters WHERE user_id=$1`, p.UserID)
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

	arows, err := u.db.QueryContext(ctx, `
        SELECT name, date_earned FROM user_achievements
        WHERE user_id=$1 ORDER BY date_earned ASC, name ASC
    `, p.UserID)
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
	_, err := u.db.ExecContext(ctx, `
        UPDATE users SET conversation_count = conversation_count + 1 WHERE user_id=$1
    `, userID)
	return err
}

func (u *users) IncrementCounter(ctx context.Context, userID, category string) error {
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO user_counters (user_id, category, count) VALUES ($1,$2,1)
        ON CONFLICT (user_id, category) DO UPDATE SET count = user_counters.count + 1
    `, userID, category)
	return err
}

func (u *users) AppendAchievements(ctx context.Context, userID string, batch []model.Achievement) (int, error) {
	added := 0
	for _, a := range batch {
		res, err := u.db.ExecContext(ctx, `
            INSERT INTO user_achievements (user_id, name, date_earned) VALUES ($1,$2,$3)
            ON CONFLICT (user_id, name) DO NOTHING
        `, userID, a.Name, a.DateEarned.UTC())
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
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, is_approved, has_pro_access, waitlist_position)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id) DO UPDATE SET
            email = excluded.email,
            is_approved = excluded.is_approved,
            has_pro_access = excluded.has_pro_access,
            waitlist_position = excluded.waitlist_position
    `, p.UserID, p.Email, p.IsApproved, p.HasProAccess, p.WaitlistPosition)
	if err != nil {
		return nil, err
	}
	return u.Get(ctx, p.UserID)
}
