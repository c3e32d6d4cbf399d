// Package source defines the inbound port for dataset loading.
package source

import (
	"context"

	"tally/internal/core"
)

// DatasetReader loads a full dataset, header already discarded.
type DatasetReader interface {
	ReadDataset(ctx context.Context) (core.Dataset, error)
}
