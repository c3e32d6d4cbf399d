package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAndEcho(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget_data_analysis.txt")
	var stdout bytes.Buffer

	r := New(&stdout)
	if err := r.Write(path, "Financial Analysis\nTotal: $3700"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Financial Analysis\nTotal: $3700\n"
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if string(got) != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
	if stdout.String() != want {
		t.Errorf("stdout copy = %q, want %q", stdout.String(), want)
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte("old report, much longer than the new one\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(&bytes.Buffer{})
	if err := r.Write(path, "new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new\n" {
		t.Errorf("file content = %q, want %q", got, "new\n")
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	r := New(&bytes.Buffer{})
	if err := r.Write(path, "report"); err == nil {
		t.Error("expected error for missing destination directory")
	}
}
