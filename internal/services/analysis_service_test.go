package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/log"
	"tally/internal/source/memory"
)

func testLogger() *log.Logger {
	return log.NewWithHandler(slog.NewTextHandler(io.Discard, nil), "test")
}

func newTestService(t *testing.T, stdout *bytes.Buffer) (*AnalysisService, string, string) {
	t.Helper()
	dir := t.TempDir()
	budgetPath := filepath.Join(dir, "budget_data_analysis.txt")
	electionPath := filepath.Join(dir, "election_data_analysis.txt")

	budget := PipelineInput{
		Source: memory.New(
			core.Row{"Jan", "1000"},
			core.Row{"Feb", "1500"},
			core.Row{"Mar", "1200"},
		),
		SourceLabel: "memory:budget",
		ReportPath:  budgetPath,
	}
	election := PipelineInput{
		Source: memory.New(
			core.Row{"1", "A", "X"},
			core.Row{"2", "A", "Y"},
			core.Row{"3", "B", "X"},
		),
		SourceLabel: "memory:election",
		ReportPath:  electionPath,
	}

	svc := NewAnalysisService(budget, election, export.New(stdout), nil, nil, testLogger())
	return svc, budgetPath, electionPath
}

func TestRunBudgetPipeline(t *testing.T) {
	var stdout bytes.Buffer
	svc, budgetPath, _ := newTestService(t, &stdout)

	if err := svc.Run(context.Background(), PipelineBudget); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(budgetPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{
		"Financial Analysis",
		"Total Months: 3",
		"Total: $3700",
		"Average Change: $100.00",
		"Greatest Increase in Profits: Feb ($500)",
		"Greatest Decrease in Profits: Mar ($-300)",
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
	if stdout.String() != string(got) {
		t.Errorf("stdout echo differs from file:\n%q\nvs\n%q", stdout.String(), got)
	}
}

func TestRunElectionPipeline(t *testing.T) {
	var stdout bytes.Buffer
	svc, _, electionPath := newTestService(t, &stdout)

	if err := svc.Run(context.Background(), PipelineElection); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(electionPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{
		"Election Results",
		"Total Votes: 3",
		"X: 66.667% (2)",
		"Y: 33.333% (1)",
		"Winner: X",
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestRunAllWritesBothReports(t *testing.T) {
	var stdout bytes.Buffer
	svc, budgetPath, electionPath := newTestService(t, &stdout)

	if err := svc.RunAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, path := range []string{budgetPath, electionPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report %s not written: %v", path, err)
		}
	}
}

func TestRunUnknownPipeline(t *testing.T) {
	svc, _, _ := newTestService(t, &bytes.Buffer{})
	if err := svc.Run(context.Background(), Pipeline("payroll")); err == nil {
		t.Error("expected error for unknown pipeline")
	}
}

func TestRunBudgetInsufficientData(t *testing.T) {
	svc, _, _ := newTestService(t, &bytes.Buffer{})
	svc.budget.Source = memory.New(core.Row{"Jan", "1000"})

	err := svc.Run(context.Background(), PipelineBudget)
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
}

func TestRunElectionEmptyDataset(t *testing.T) {
	svc, _, _ := newTestService(t, &bytes.Buffer{})
	svc.election.Source = memory.New()

	err := svc.Run(context.Background(), PipelineElection)
	if !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
}
