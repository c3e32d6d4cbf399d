// Package google loads datasets from a Google Sheets range. Remote
// ledgers and ballot exports live in spreadsheets often enough that
// this is a first-class source backend.
package google

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"tally/internal/core"
	ports "tally/internal/source"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads one sheet range as a dataset. The first row of the
// range is treated as the header and discarded.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
}

var _ ports.DatasetReader = (*Client)(nil)

// New creates a client for one spreadsheet range. Credentials come
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, readRange string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	readRange = strings.TrimSpace(readRange)
	if readRange == "" {
		return nil, errors.New("missing read range")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

// ReadDataset fetches the configured range and converts the value
// matrix into rows of strings, header discarded.
func (c *Client) ReadDataset(ctx context.Context) (core.Dataset, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", c.readRange, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	ds := make(core.Dataset, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		ds = append(ds, core.Row(toStrings(row)))
	}
	return ds, nil
}

// Range returns the configured range, for logging and run records.
func (c *Client) Range() string {
	return c.readRange
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		var err error
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// toStrings flattens a Sheets value row. Numeric cells come back as
// float64; whole numbers must not grow a decimal point, or ballot ids
// and integer amounts would no longer parse.
func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch n := v.(type) {
		case float64:
			if n == math.Trunc(n) {
				out[i] = strconv.FormatInt(int64(n), 10)
			} else {
				out[i] = strconv.FormatFloat(n, 'f', -1, 64)
			}
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out
}
