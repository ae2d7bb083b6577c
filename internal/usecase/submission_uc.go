package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

// SubmissionUseCase is the producer-side boundary of the queue: enqueue an
// optimization request and return once it is durably queued. Processing is
// asynchronous; the submitter never gets a synchronous result.
type SubmissionUseCase interface {
	Enqueue(ctx context.Context, orderID string) (*model.OptimizationJob, error)
	GetJob(ctx context.Context, jobID string) (*model.OptimizationJob, error)
}

type submissionUC struct {
	jobs repository.OptimizationJobRepository
	log  *zerolog.Logger
}

var _ SubmissionUseCase = (*submissionUC)(nil)

func NewSubmissionUseCase(jobs repository.OptimizationJobRepository, log *zerolog.Logger) *submissionUC {
	return &submissionUC{jobs: jobs, log: log}
}

// Enqueue inserts a fresh queued job. There is deliberately no deduplication
// by order: duplicate jobs are harmless because processing is idempotent.
func (uc *submissionUC) Enqueue(ctx context.Context, orderID string) (*model.OptimizationJob, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidArgument
	}

	now := time.Now()
	job := &model.OptimizationJob{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		Status:     model.OptimizationJobStatusQueued,
		EnqueuedAt: now,
		UpdatedAt:  now,
	}
	if err := uc.jobs.Save(ctx, nil, job); err != nil {
		return nil, err
	}
	uc.log.Info().Str("job_id", job.ID).Str("order_id", orderID).Msg("optimization job enqueued")
	return job, nil
}

func (uc *submissionUC) GetJob(ctx context.Context, jobID string) (*model.OptimizationJob, error) {
	return uc.jobs.FindByID(ctx, nil, jobID)
}
