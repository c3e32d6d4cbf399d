package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tally/internal/amqp"
	"tally/internal/cli"
	"tally/internal/export"
	"tally/internal/services"
	"tally/internal/storage"
	"tally/internal/worker"
)

// tally-worker consumes run requests from AMQP and executes the
// requested pipeline, writing reports and run history like the CLI.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), "tally-worker")

	logger.Info("Starting tally-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	budget, election := cli.BuildPipelineInputs(ctx, logger, cfg)

	var repo *storage.RunRepository
	if cfg.SQLiteDBPath != "" {
		repo = cli.InitRunRepository(logger, cfg.SQLiteDBPath)
	} else {
		logger.Info("Run history disabled - no SQLITE_DB_PATH provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPEventQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}

	svc := services.NewAnalysisService(budget, election, export.New(nil), repo, amqpClient, logger)
	defer svc.Close()

	runWorker := worker.NewRunWorker(svc, logger)

	go func() {
		if err := amqpClient.ConsumeRunRequests(ctx, runWorker.HandleRunRequest(ctx)); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	cancel()

	// Give the in-flight run time to finish
	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(2 * time.Second):
		logger.Info("Worker shutdown complete")
	}
}
