package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// IndexRun records the outcome of one pass of the vault indexer.
type IndexRun struct {
	ID           int64            `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	Source       string           `json:"source"`
	Status       string           `json:"status"`
	NotesSeen    int              `json:"notes_seen"`
	NotesIndexed int              `json:"notes_indexed"`
	NotesSkipped int              `json:"notes_skipped"`
	NotesRemoved int              `json:"notes_removed"`
	SetsIndexed  int64            `json:"sets_indexed"`
	DurationMs   *int             `json:"duration_ms"`
	ErrorMessage *string          `json:"error_message"`
	Metadata     *json.RawMessage `json:"metadata"`
}

// InsertIndexRun creates a new index run entry and returns its ID.
func (db *DB) InsertIndexRun(ctx context.Context, run IndexRun) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO index_runs (source, status, notes_seen, notes_indexed, notes_skipped,
		 notes_removed, sets_indexed, duration_ms, error_message, metadata)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING id`,
		run.Source, run.Status, run.NotesSeen, run.NotesIndexed, run.NotesSkipped,
		run.NotesRemoved, run.SetsIndexed, run.DurationMs, run.ErrorMessage, run.Metadata,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting index run: %w", err)
	}
	return id, nil
}

// FinishIndexRun updates a run, typically from "running" to "success" or "error".
func (db *DB) FinishIndexRun(ctx context.Context, id int64, run IndexRun) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE index_runs SET
		 status = $2, notes_seen = $3, notes_indexed = $4, notes_skipped = $5,
		 notes_removed = $6, sets_indexed = $7, duration_ms = $8, error_message = $9, metadata = $10
		 WHERE id = $1`,
		id, run.Status, run.NotesSeen, run.NotesIndexed, run.NotesSkipped,
		run.NotesRemoved, run.SetsIndexed, run.DurationMs, run.ErrorMessage, run.Metadata,
	)
	if err != nil {
		return fmt.Errorf("updating index run %d: %w", id, err)
	}
	return nil
}

// QueryIndexRuns returns the most recent index runs.
func (db *DB) QueryIndexRuns(ctx context.Context, limit int) ([]IndexRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source, status, notes_seen, notes_indexed, notes_skipped,
		 notes_removed, sets_indexed, duration_ms, error_message, metadata
		 FROM index_runs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying index runs: %w", err)
	}
	defer rows.Close()

	result := []IndexRun{}
	for rows.Next() {
		var r IndexRun
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Status, &r.NotesSeen,
			&r.NotesIndexed, &r.NotesSkipped, &r.NotesRemoved, &r.SetsIndexed,
			&r.DurationMs, &r.ErrorMessage, &r.Metadata); err != nil {
			return nil, fmt.Errorf("scanning index run: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
