package audit

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS verdicts (
	id         BIGSERIAL PRIMARY KEY,
	request_id TEXT NOT NULL DEFAULT '',
	topic      TEXT NOT NULL,
	model      TEXT NOT NULL,
	verdict    TEXT NOT NULL,
	blocked    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Recorder {
	return &repo{db: db}
}

// Migrate creates the verdicts table when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate verdicts: %w", err)
	}
	return nil
}

func (r *repo) Record(ctx context.Context, v *Verdict) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verdicts (request_id, topic, model, verdict, blocked)
		VALUES ($1, $2, $3, $4, $5)
	`,
		v.RequestID,
		v.Topic,
		v.Model,
		v.Verdict,
		v.Blocked,
	)
	if err != nil {
		return fmt.Errorf("record verdict: %w", err)
	}
	return nil
}
