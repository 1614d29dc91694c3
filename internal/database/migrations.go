package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Migrate runs all database migrations
func (db *DB) Migrate() error {
	log.Info().Msg("Running database migrations")

	// Create migrations table if not exists
	_, err := db.exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.queryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	for _, migration := range migrations {
		if migration.Version > currentVersion {
			log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

			if err := db.Transaction(func(tx *sql.Tx) error {
				statements := splitSQLStatements(migration.SQL)
				for i, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return fmt.Errorf("migration %d statement %d failed: %w", migration.Version, i+1, err)
					}
				}

				if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", migration.Version); err != nil {
					return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
				}

				return nil
			}); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

type migration struct {
	Version int
	Name    string
	SQL     string
}

// splitSQLStatements splits a SQL string into individual statements.
// It handles comments and only returns non-empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	lines := strings.SplitSeq(sql, "\n")
	for line := range lines {
		trimmed := strings.TrimSpace(line)
		// Skip empty lines and comments
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			-- User accounts
			CREATE TABLE users (
				id INTEGER PRIMARY KEY,
				user_name TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				first_name TEXT NOT NULL DEFAULT '',
				last_name TEXT NOT NULL DEFAULT '',
				email TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL
			);

			-- Sessions for the web surface
			CREATE TABLE sessions (
				id TEXT PRIMARY KEY,
				user_name TEXT NOT NULL REFERENCES users(user_name) ON DELETE CASCADE,
				expires_at TIMESTAMP NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);

			-- Global settings
			CREATE TABLE settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);

			-- Submissions store their creation date as ISO-8601 text
			CREATE TABLE questions (
				id INTEGER PRIMARY KEY,
				user_name TEXT NOT NULL,
				creation_date TEXT NOT NULL,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				answers TEXT NOT NULL DEFAULT '',
				tags TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE answers (
				id INTEGER PRIMARY KEY,
				user_name TEXT NOT NULL,
				creation_date TEXT NOT NULL,
				content TEXT NOT NULL
			);

			CREATE TABLE comments (
				id INTEGER PRIMARY KEY,
				user_name TEXT NOT NULL,
				creation_date TEXT NOT NULL,
				content TEXT NOT NULL,
				parent_id INTEGER NOT NULL
			);

			-- Exactly one of question_id/answer_id is set
			CREATE TABLE reviews (
				id INTEGER PRIMARY KEY,
				user_name TEXT NOT NULL,
				creation_date TEXT NOT NULL,
				content TEXT NOT NULL,
				rating INTEGER NOT NULL,
				question_id INTEGER,
				answer_id INTEGER,
				CHECK (rating BETWEEN 1 AND 5),
				CHECK ((question_id IS NULL) != (answer_id IS NULL))
			);

			CREATE TABLE reviewer_profiles (
				user_name TEXT PRIMARY KEY,
				bio TEXT NOT NULL DEFAULT '',
				expertise TEXT NOT NULL DEFAULT '',
				years_experience INTEGER NOT NULL DEFAULT 0,
				total_reviews INTEGER NOT NULL DEFAULT 0,
				average_rating REAL NOT NULL DEFAULT 0
			);

			CREATE TABLE messages (
				id INTEGER PRIMARY KEY,
				sender_name TEXT NOT NULL,
				receiver_name TEXT NOT NULL,
				content TEXT NOT NULL,
				sent_time TIMESTAMP NOT NULL,
				is_read BOOLEAN NOT NULL DEFAULT 0
			);

			CREATE TABLE invitation_codes (
				code TEXT PRIMARY KEY,
				is_used BOOLEAN NOT NULL DEFAULT 0
			);

			CREATE TABLE pending_reviewers (
				user_name TEXT PRIMARY KEY,
				request_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);

			CREATE INDEX idx_comments_parent ON comments(parent_id);
			CREATE INDEX idx_reviews_question ON reviews(question_id);
			CREATE INDEX idx_reviews_answer ON reviews(answer_id);
			CREATE INDEX idx_messages_receiver ON messages(receiver_name);
			CREATE INDEX idx_sessions_expires ON sessions(expires_at);
		`,
	},
}
