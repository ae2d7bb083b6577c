package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
	"freight-assignment-engine/internal/infra/metrics"
	"freight-assignment-engine/internal/usecase"
)

// OptimizationProcessor drains the job queue: it claims queued jobs, runs the
// optimization use case for each, and finalizes the job state. Delivery is
// at-least-once; the use case is idempotent so duplicate runs are harmless.
type OptimizationProcessor struct {
	jobsRepo   repository.OptimizationJobRepository
	optimizer  usecase.OptimizeUseCase
	jobTimeout time.Duration
	log        *zerolog.Logger
}

func NewOptimizationProcessor(
	jobsRepo repository.OptimizationJobRepository,
	optimizer usecase.OptimizeUseCase,
	jobTimeout time.Duration,
	log *zerolog.Logger,
) *OptimizationProcessor {
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}
	return &OptimizationProcessor{
		jobsRepo:   jobsRepo,
		optimizer:  optimizer,
		jobTimeout: jobTimeout,
		log:        log,
	}
}

// Start runs a loop that feeds the worker pool.
// This should be run in a goroutine.
func (p *OptimizationProcessor) Start(ctx context.Context, pool *Pool, pollInterval time.Duration) {
	p.log.Info().Msg("optimization processor started")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("optimization processor stopping")
			return
		case <-ticker.C:
			_ = pool.Submit(func(ctx context.Context) error {
				p.ProcessOne(ctx)
				return nil
			})
		}
	}
}

// ProcessOne claims at most one queued job and runs it to a terminal state.
func (p *OptimizationProcessor) ProcessOne(ctx context.Context) {
	job, err := p.jobsRepo.FetchAndMarkRunning(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			p.log.Error().Err(err).Msg("failed to fetch optimization job")
		}
		return // queue empty, or the claim failed
	}

	p.log.Info().Str("job_id", job.ID).Str("order_id", job.OrderID).Msg("processing optimization job")
	start := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, p.jobTimeout)
	err = p.optimizer.Optimize(runCtx, job.OrderID)
	cancel()
	elapsed := time.Since(start)

	finalStatus := model.OptimizationJobStatusCompleted
	if err != nil {
		finalStatus = model.OptimizationJobStatusFailed
		job.LastError = err.Error()
		p.log.Error().Err(err).Str("job_id", job.ID).Msg("optimization job failed")
	}

	metrics.IncJob(string(finalStatus))
	metrics.ObserveJobDuration(elapsed.Seconds())
	job.Status = finalStatus
	// Finalize with a fresh context so a cancelled run still records its state.
	if err := p.jobsRepo.Save(context.Background(), nil, job); err != nil {
		p.log.Error().Err(err).Str("job_id", job.ID).Msg("failed to finalize optimization job")
	}
	p.log.Info().
		Str("job_id", job.ID).
		Str("status", string(finalStatus)).
		Dur("duration_ms", elapsed).
		Msg("optimization job finished")
}
