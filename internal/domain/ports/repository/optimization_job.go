package repository

import (
	"context"

	"freight-assignment-engine/internal/domain/model"
)

// OptimizationJobRepository is the durable job queue. Enqueue is Save with a
// fresh queued job; delivery is at-least-once via FetchAndMarkRunning, which
// atomically claims the oldest queued job so no two workers pick it up.
type OptimizationJobRepository interface {
	Save(ctx context.Context, tx Tx, job *model.OptimizationJob) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.OptimizationJob, error)
	FetchAndMarkRunning(ctx context.Context) (*model.OptimizationJob, error)
}
