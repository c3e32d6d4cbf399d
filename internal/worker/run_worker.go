// Package worker executes analysis runs requested over AMQP.
package worker

import (
	"context"

	"tally/internal/amqp"
	"tally/internal/log"
	"tally/internal/services"
)

// RunWorker handles run-request messages by executing the named
// pipeline through the analysis service.
type RunWorker struct {
	service *services.AnalysisService
	logger  *log.Logger
}

func NewRunWorker(service *services.AnalysisService, logger *log.Logger) *RunWorker {
	return &RunWorker{
		service: service,
		logger:  logger.WithComponent("run-worker"),
	}
}

// HandleRunRequest runs the requested pipeline. Errors propagate to
// the consumer, which requeues the message.
func (w *RunWorker) HandleRunRequest(ctx context.Context) func(*amqp.RunRequestMessage) error {
	return func(msg *amqp.RunRequestMessage) error {
		w.logger.Info("Executing requested run", "pipeline", msg.Pipeline)
		if err := w.service.Run(ctx, services.Pipeline(msg.Pipeline)); err != nil {
			return err
		}
		w.logger.Info("Requested run finished", "pipeline", msg.Pipeline)
		return nil
	}
}
