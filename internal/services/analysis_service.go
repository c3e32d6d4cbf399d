// Package services wires the two analysis pipelines together: load a
// dataset, analyze it, format the summary, export the report, then
// record the run and announce it.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/log"
	"tally/internal/report"
	"tally/internal/source"
	"tally/internal/storage"
)

type Pipeline string

const (
	PipelineBudget   Pipeline = "budget"
	PipelineElection Pipeline = "election"
)

// PipelineInput binds one pipeline to its dataset source and report
// destination. SourceLabel is a human-readable description of where
// the data came from, kept in run records.
type PipelineInput struct {
	Source      source.DatasetReader
	SourceLabel string
	ReportPath  string
}

// AnalysisService executes pipelines end to end. The run repository
// and AMQP client are optional; when absent, history and events are
// skipped.
type AnalysisService struct {
	budget     PipelineInput
	election   PipelineInput
	reporter   *export.Reporter
	repo       *storage.RunRepository
	amqpClient *amqp.Client
	logger     *log.Logger
}

func NewAnalysisService(budget, election PipelineInput, reporter *export.Reporter, repo *storage.RunRepository, amqpClient *amqp.Client, logger *log.Logger) *AnalysisService {
	return &AnalysisService{
		budget:     budget,
		election:   election,
		reporter:   reporter,
		repo:       repo,
		amqpClient: amqpClient,
		logger:     logger,
	}
}

// Run executes one pipeline by name.
func (s *AnalysisService) Run(ctx context.Context, pipeline Pipeline) error {
	switch pipeline {
	case PipelineBudget:
		return s.runBudget(ctx)
	case PipelineElection:
		return s.runElection(ctx)
	}
	return fmt.Errorf("unknown pipeline %q", pipeline)
}

// RunAll executes both pipelines. They share nothing, so they run
// concurrently; the first failure cancels the run.
func (s *AnalysisService) RunAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.runBudget(ctx) })
	g.Go(func() error { return s.runElection(ctx) })
	return g.Wait()
}

func (s *AnalysisService) runBudget(ctx context.Context) error {
	logger := s.logger.WithComponent("budget")

	ds, err := s.budget.Source.ReadDataset(ctx)
	if err != nil {
		return fmt.Errorf("load budget dataset: %w", err)
	}
	logger.Debug("Dataset loaded", "rows", len(ds), "source", s.budget.SourceLabel)

	summary, err := core.AnalyzeBudget(ds)
	if err != nil {
		return fmt.Errorf("analyze budget dataset: %w", err)
	}

	text := report.FormatBudget(summary)
	if err := s.reporter.Write(s.budget.ReportPath, text); err != nil {
		return fmt.Errorf("export budget report: %w", err)
	}
	logger.Info("Budget report written",
		"path", s.budget.ReportPath,
		"months", summary.Months,
		"total_cents", summary.Total.Cents)

	s.finishRun(ctx, PipelineBudget, s.budget, len(ds), text, logger)
	return nil
}

func (s *AnalysisService) runElection(ctx context.Context) error {
	logger := s.logger.WithComponent("election")

	ds, err := s.election.Source.ReadDataset(ctx)
	if err != nil {
		return fmt.Errorf("load election dataset: %w", err)
	}
	logger.Debug("Dataset loaded", "rows", len(ds), "source", s.election.SourceLabel)

	summary, err := core.AnalyzeElection(ds)
	if err != nil {
		return fmt.Errorf("analyze election dataset: %w", err)
	}

	text := report.FormatElection(summary)
	if err := s.reporter.Write(s.election.ReportPath, text); err != nil {
		return fmt.Errorf("export election report: %w", err)
	}
	logger.Info("Election report written",
		"path", s.election.ReportPath,
		"total_votes", summary.TotalVotes,
		"winner", summary.Winner)

	s.finishRun(ctx, PipelineElection, s.election, len(ds), text, logger)
	return nil
}

// finishRun records history and publishes the completion event. The
// report is already on disk at this point, so failures here are
// logged, not fatal.
func (s *AnalysisService) finishRun(ctx context.Context, pipeline Pipeline, input PipelineInput, rows int, text string, logger *log.Logger) {
	var runID int64
	if s.repo != nil {
		id, err := s.repo.RecordRun(ctx, storage.CreateRunParams{
			Pipeline:    string(pipeline),
			InputSource: input.SourceLabel,
			OutputPath:  input.ReportPath,
			RowCount:    int64(rows),
			Report:      text,
		})
		if err != nil {
			logger.Error("Failed to record run", "error", err)
		} else {
			runID = id
		}
	}

	if s.amqpClient != nil {
		msg := amqp.NewRunCompletedMessage(string(pipeline), input.ReportPath, rows, runID)
		if err := s.amqpClient.PublishRunCompleted(ctx, msg); err != nil {
			logger.Error("Failed to publish run completed event", "error", err)
		}
	}
}

// Close closes the optional storage and AMQP connections.
func (s *AnalysisService) Close() error {
	var errs []error

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close analysis service: %v", errs)
	}

	return nil
}
