package main

import (
	"context"
	"os"

	"tally/internal/amqp"
	"tally/internal/cli"
	"tally/internal/export"
	"tally/internal/log"
	"tally/internal/services"
	"tally/internal/storage"
)

// tally runs one or both analysis pipelines:
//
//	tally            run budget and election
//	tally budget     run only the budget pipeline
//	tally election   run only the election pipeline
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), "tally")
	os.Exit(run(logger))
}

func run(logger *log.Logger) int {
	cfg := cli.LoadAndValidateConfig(logger)

	pipeline := "all"
	if len(os.Args) > 1 {
		pipeline = os.Args[1]
	}
	switch pipeline {
	case "all", string(services.PipelineBudget), string(services.PipelineElection):
	default:
		logger.Error("Unknown pipeline argument", "pipeline", pipeline)
		return 1
	}

	ctx := context.Background()
	budget, election := cli.BuildPipelineInputs(ctx, logger, cfg)

	var repo *storage.RunRepository
	if cfg.SQLiteDBPath != "" {
		repo = cli.InitRunRepository(logger, cfg.SQLiteDBPath)
	} else {
		logger.Info("Run history disabled - no SQLITE_DB_PATH provided")
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRequestQueue, cfg.AMQPEventQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			return 1
		}
	} else {
		logger.Info("Run events disabled - no AMQP_URL provided")
	}

	svc := services.NewAnalysisService(budget, election, export.New(nil), repo, amqpClient, logger)
	defer svc.Close()

	var err error
	switch pipeline {
	case "all":
		err = svc.RunAll(ctx)
	default:
		err = svc.Run(ctx, services.Pipeline(pipeline))
	}
	if err != nil {
		logger.Error("Analysis run failed", "error", err, "pipeline", pipeline)
		return 1
	}

	return 0
}
