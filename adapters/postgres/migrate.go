package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Schema statements, applied idempotently at startup. The unique constraint
// on review_scores is what makes score submission write-once.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS review_sessions (
		id UUID PRIMARY KEY,
		subject TEXT NOT NULL,
		review_level TEXT NOT NULL,
		state TEXT NOT NULL,
		correlation_class TEXT NOT NULL DEFAULT '',
		result_json TEXT,
		fingerprint TEXT NOT NULL DEFAULT '',
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		decided_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS review_experts (
		review_id UUID NOT NULL REFERENCES review_sessions(id),
		id TEXT NOT NULL,
		domain_category TEXT NOT NULL,
		domain_weight DOUBLE PRECISION NOT NULL,
		role_tier TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (review_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS review_scores (
		review_id UUID NOT NULL REFERENCES review_sessions(id),
		expert_id TEXT NOT NULL,
		angle_id TEXT NOT NULL,
		raw_score INTEGER NOT NULL CHECK (raw_score BETWEEN 1 AND 5),
		submitted_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (review_id, expert_id, angle_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_sessions_created_at ON review_sessions (created_at DESC)`,
}

// Migrate applies the schema
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Connect opens and pings a PostgreSQL connection
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
