package postgres

import "database/sql"

// EnsureSchema creates the core tables if they do not exist. Deployments that
// run migrations separately can skip this.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS questions (
            question_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            question TEXT NOT NULL,
            answer TEXT NOT NULL,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS questions_by_user ON questions (user_id, creation_time DESC);`,
		`CREATE TABLE IF NOT EXISTS users (
            user_id TEXT PRIMARY KEY,
            email TEXT UNIQUE,
            conversation_count INTEGER NOT NULL DEFAULT 0,
            is_approved BOOLEAN NOT NULL DEFAULT FALSE,
            has_pro_access BOOLEAN NOT NULL DEFAULT FALSE,
            waitlist_position INTEGER,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS user_counters (
            user_id TEXT NOT NULL,
            category TEXT NOT NULL,
            count INTEGER NOT NULL DEFAULT 0,
            PRIMARY KEY (user_id, category)
        );`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
            user_id TEXT NOT NULL,
            name TEXT NOT NULL,
            date_earned TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (user_id, name)
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
