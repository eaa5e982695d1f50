package sqlite

import "database/sql"

// EnsureSchema creates the core tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Questions (
            QuestionId TEXT PRIMARY KEY,
            UserId TEXT NOT NULL,
            Question TEXT NOT NULL,
            Answer TEXT NOT NULL,
            CreationTime TIMESTAMP NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS QuestionsByUser ON Questions(UserId, CreationTime);`,
		`CREATE TABLE IF NOT EXISTS Users (
            UserId TEXT PRIMARY KEY,
            Email TEXT UNIQUE,
            ConversationCount INTEGER NOT NULL DEFAULT 0,
            IsApproved BOOLEAN NOT NULL DEFAULT 0,
            HasProAccess BOOLEAN NOT NULL DEFAULT 0,
            WaitlistPosition INTEGER,
            CreationTime TIMESTAMP NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS UserCounters (
            UserId TEXT NOT NULL,
            Category TEXT NOT NULL,
            Count INTEGER NOT NULL DEFAULT 0,
            PRIMARY KEY(UserId, Category)
        );`,
		`CREATE TABLE IF NOT EXISTS UserAchievements (
            UserId TEXT NOT NULL,
            Name TEXT NOT NULL,
            DateEarned TIMESTAMP NOT NULL,
            PRIMARY KEY(UserId, Name)
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
