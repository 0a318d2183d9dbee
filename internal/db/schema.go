package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// sqliteSchema creates all tables for SQLite.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    phone         TEXT,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS categories (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    icon TEXT
)`,
	`CREATE TABLE IF NOT EXISTS items (
    id                 INTEGER PRIMARY KEY,
    name               TEXT NOT NULL,
    description        TEXT,
    image_url          TEXT,
    image              BLOB,
    image_mime         TEXT,
    category_id        INTEGER NOT NULL REFERENCES categories(id),
    created_by_user_id INTEGER NOT NULL REFERENCES users(id),
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS reviews (
    id         INTEGER PRIMARY KEY,
    item_id    INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    stars      INTEGER NOT NULL CHECK (stars BETWEEN 0 AND 5),
    content    TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS comments (
    id         INTEGER PRIMARY KEY,
    review_id  INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    content    TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS review_reactions (
    id        INTEGER PRIMARY KEY,
    review_id INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    user_id   INTEGER NOT NULL REFERENCES users(id),
    is_up     BOOLEAN NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS notifications (
    id                 INTEGER PRIMARY KEY,
    user_id            INTEGER NOT NULL REFERENCES users(id),
    type               TEXT NOT NULL CHECK (type IN ('comment-on-review', 'thumb-up', 'thumb-down', 'reply-on-comment')),
    related_review_id  INTEGER,
    related_comment_id INTEGER,
    from_user_id       INTEGER,
    is_read            BOOLEAN NOT NULL DEFAULT 0,
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
)`,
}

// postgresSchema creates all tables for PostgreSQL.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    phone         TEXT,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS categories (
    id   BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    icon TEXT
)`,
	`CREATE TABLE IF NOT EXISTS items (
    id                 BIGSERIAL PRIMARY KEY,
    name               TEXT NOT NULL,
    description        TEXT,
    image_url          TEXT,
    image              BYTEA,
    image_mime         TEXT,
    category_id        BIGINT NOT NULL REFERENCES categories(id),
    created_by_user_id BIGINT NOT NULL REFERENCES users(id),
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS reviews (
    id         BIGSERIAL PRIMARY KEY,
    item_id    BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    user_id    BIGINT NOT NULL REFERENCES users(id),
    stars      INTEGER NOT NULL CHECK (stars BETWEEN 0 AND 5),
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS comments (
    id         BIGSERIAL PRIMARY KEY,
    review_id  BIGINT NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    user_id    BIGINT NOT NULL REFERENCES users(id),
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS review_reactions (
    id        BIGSERIAL PRIMARY KEY,
    review_id BIGINT NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    user_id   BIGINT NOT NULL REFERENCES users(id),
    is_up     BOOLEAN NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS notifications (
    id                 BIGSERIAL PRIMARY KEY,
    user_id            BIGINT NOT NULL REFERENCES users(id),
    type               TEXT NOT NULL CHECK (type IN ('comment-on-review', 'thumb-up', 'thumb-down', 'reply-on-comment')),
    related_review_id  BIGINT,
    related_comment_id BIGINT,
    from_user_id       BIGINT,
    is_read            BOOLEAN NOT NULL DEFAULT FALSE,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at TIMESTAMPTZ NOT NULL
)`,
}

// migrations run in order after the schema. Each must be idempotent and
// valid for every supported driver. Append new migrations at the end.
var migrations = []string{
	// One reaction per user per review.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_review_reactions_review_user
	     ON review_reactions(review_id, user_id)`,
	// Phone is optional but unique when set.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_phone
	     ON users(phone) WHERE phone IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_item ON reviews(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_review ON comments(review_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
}

// Migrate creates all tables and indexes if they don't already exist.
func Migrate(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == DriverPostgres {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
