// Package export writes finished reports to their destination file and
// echoes an identical copy to standard output.
package export

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter writes report text to a path and mirrors it to stdout. The
// stdout writer is injectable so tests can capture the echo. The echo
// is serialized so concurrently finishing pipelines never interleave.
type Reporter struct {
	mu     sync.Mutex
	stdout io.Writer
}

// New returns a Reporter echoing to the given writer. A nil writer
// means os.Stdout.
func New(stdout io.Writer) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Reporter{stdout: stdout}
}

// Write stores the report (with a trailing newline) at path,
// overwriting any existing file, then writes the same bytes to stdout.
// It fails when the destination directory does not exist or is not
// writable.
func (r *Reporter) Write(path, report string) error {
	text := report + "\n"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.stdout, text); err != nil {
		return fmt.Errorf("echo report to stdout: %w", err)
	}
	return nil
}
