// Package csvfile loads datasets from comma-delimited text files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"tally/internal/core"
	"tally/internal/source"
)

// Reader loads a dataset from a CSV file whose first row is a header.
type Reader struct {
	path string
}

var _ source.DatasetReader = (*Reader)(nil)

func New(path string) *Reader {
	return &Reader{path: path}
}

// ReadDataset reads the whole file, discards the header row, and
// returns the remaining rows in file order. Missing or unreadable
// files and ragged rows are fatal.
func (r *Reader) ReadDataset(_ context.Context) (core.Dataset, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", r.path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", r.path, err)
	}
	if len(records) == 0 {
		// File without even a header: nothing to analyze.
		return nil, nil
	}

	ds := make(core.Dataset, 0, len(records)-1)
	for _, rec := range records[1:] {
		ds = append(ds, core.Row(rec))
	}
	return ds, nil
}

// Path returns the source file path, for logging and run records.
func (r *Reader) Path() string {
	return r.path
}
