package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/david/grant-tracker/internal/ingest"
)

// Archive records run history in a local sqlite database so past runs can
// be inspected after snapshots have been overwritten.
type Archive struct {
	db *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	started_at   TIMESTAMP NOT NULL,
	duration_ms  INTEGER NOT NULL,
	total_grants INTEGER NOT NULL,
	urgent       INTEGER NOT NULL,
	upcoming     INTEGER NOT NULL,
	future       INTEGER NOT NULL,
	sources      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// RunRecord is one archived run.
type RunRecord struct {
	ID          string               `json:"id"`
	StartedAt   time.Time            `json:"started_at"`
	Duration    time.Duration        `json:"duration"`
	TotalGrants int                  `json:"total_grants"`
	Urgent      int                  `json:"urgent"`
	Upcoming    int                  `json:"upcoming"`
	Future      int                  `json:"future"`
	Sources     []ingest.SourceStats `json:"sources"`
}

func OpenArchive(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// RecordRun archives the outcome of one pipeline run.
func (a *Archive) RecordRun(ctx context.Context, res ingest.Result) error {
	sources, err := json.Marshal(res.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode source stats: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, total_grants, urgent, upcoming, future, sources)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID,
		res.StartedAt,
		res.Duration.Milliseconds(),
		len(res.Grants),
		len(res.Buckets.Urgent),
		len(res.Buckets.Upcoming),
		len(res.Buckets.Future),
		string(sources),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit archived runs, newest first.
func (a *Archive) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, total_grants, urgent, upcoming, future, sources
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var durationMs int64
		var sources string
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &durationMs, &rec.TotalGrants,
			&rec.Urgent, &rec.Upcoming, &rec.Future, &sources); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		if err := json.Unmarshal([]byte(sources), &rec.Sources); err != nil {
			return nil, fmt.Errorf("failed to decode source stats: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
