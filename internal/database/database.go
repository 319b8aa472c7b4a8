package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/pycert-prep/backend/internal/config"
)

func Connect(cfg config.DBConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS chapters (
		id             BIGSERIAL PRIMARY KEY,
		num            INT UNIQUE NOT NULL,
		title          VARCHAR(255) NOT NULL,
		official_quota INT NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS questions (
		id          BIGSERIAL PRIMARY KEY,
		chapter_id  BIGINT NOT NULL REFERENCES chapters(id) ON DELETE CASCADE,
		kind        VARCHAR(10) NOT NULL DEFAULT 'single',
		stem        TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		is_excluded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_questions_chapter ON questions(chapter_id, is_excluded);

	CREATE TABLE IF NOT EXISTS choices (
		id          BIGSERIAL PRIMARY KEY,
		question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		text        TEXT NOT NULL,
		is_correct  BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_choices_question ON choices(question_id);

	CREATE TABLE IF NOT EXISTS attempts (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		is_correct  BOOLEAN NOT NULL,
		answered_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		mode        VARCHAR(10) NOT NULL,
		box         INT NOT NULL DEFAULT 0 CHECK (box >= 0 AND box <= 4)
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_user_mode ON attempts(user_id, mode, answered_at DESC);
	CREATE INDEX IF NOT EXISTS idx_attempts_question ON attempts(question_id);

	CREATE TABLE IF NOT EXISTS exam_sessions (
		user_id       BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		question_ids  JSONB NOT NULL,
		current_index INT NOT NULL DEFAULT 0,
		correct_count INT NOT NULL DEFAULT 0,
		started_at    TIMESTAMP WITH TIME ZONE NOT NULL,
		choice_order  JSONB NOT NULL
	);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
