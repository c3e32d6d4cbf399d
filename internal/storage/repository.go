// Package storage keeps a history of completed analysis runs in
// SQLite, so past reports can be inspected after the fact.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type RunRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewRunRepository(dbPath string) (*RunRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &RunRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *RunRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordRun stores one completed analysis run and returns its id.
func (r *RunRepository) RecordRun(ctx context.Context, arg CreateRunParams) (int64, error) {
	run, err := r.queries.CreateRun(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}

	slog.InfoContext(ctx, "Run recorded",
		"id", run.ID,
		"pipeline", run.Pipeline,
		"input", run.InputSource,
		"rows", run.RowCount)

	return run.ID, nil
}

// RecentRuns returns the latest runs, newest first.
func (r *RunRepository) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	runs, err := r.queries.ListRecentRuns(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list recent runs: %w", err)
	}
	return runs, nil
}

// RunCount returns how many runs were recorded for a pipeline.
func (r *RunRepository) RunCount(ctx context.Context, pipeline string) (int64, error) {
	n, err := r.queries.CountRunsByPipeline(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}
