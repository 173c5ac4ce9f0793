package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint         TEXT NOT NULL UNIQUE,
	source              TEXT NOT NULL,
	source_job_id       TEXT,
	title               TEXT NOT NULL,
	company             TEXT NOT NULL,
	location            TEXT,
	remote              INTEGER NOT NULL DEFAULT 0,
	contract            INTEGER NOT NULL DEFAULT 0,
	tags                TEXT,
	url                 TEXT,
	apply_url           TEXT,
	origin_domain       TEXT,
	description         TEXT,
	description_snippet TEXT,
	posted_at           TIMESTAMP,
	created_at          TIMESTAMP NOT NULL,
	updated_at          TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_source ON jobs (source);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at);
`

// Store wraps the sqlite database holding persisted jobs. The UNIQUE
// constraint on fingerprint is what keeps concurrent ingestion runs from
// double-inserting the same posting.
type Store struct {
	DB *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.DB.BeginTx(ctx, nil)
}
