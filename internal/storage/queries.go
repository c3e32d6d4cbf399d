package storage

import (
	"context"
	"database/sql"
	"time"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Run is one recorded analysis run.
type Run struct {
	ID          int64
	Pipeline    string
	InputSource string
	OutputPath  string
	RowCount    int64
	Report      string
	CreatedAt   time.Time
}

type CreateRunParams struct {
	Pipeline    string
	InputSource string
	OutputPath  string
	RowCount    int64
	Report      string
}

const createRun = `
INSERT INTO runs (pipeline, input_source, output_path, row_count, report)
VALUES (?, ?, ?, ?, ?)
RETURNING id, pipeline, input_source, output_path, row_count, report, created_at
`

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (Run, error) {
	row := q.db.QueryRowContext(ctx, createRun,
		arg.Pipeline,
		arg.InputSource,
		arg.OutputPath,
		arg.RowCount,
		arg.Report,
	)
	var r Run
	err := row.Scan(&r.ID, &r.Pipeline, &r.InputSource, &r.OutputPath, &r.RowCount, &r.Report, &r.CreatedAt)
	return r, err
}

const listRecentRuns = `
SELECT id, pipeline, input_source, output_path, row_count, report, created_at
FROM runs
ORDER BY created_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListRecentRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, listRecentRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Pipeline, &r.InputSource, &r.OutputPath, &r.RowCount, &r.Report, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const countRunsByPipeline = `
SELECT COUNT(*) FROM runs WHERE pipeline = ?
`

func (q *Queries) CountRunsByPipeline(ctx context.Context, pipeline string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countRunsByPipeline, pipeline).Scan(&n)
	return n, err
}
