package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

var _ repository.OptimizationJobRepository = (*optimizationJobRepo)(nil)

type optimizationJobRepo struct {
	pool *pgxpool.Pool
	tm   repository.TransactionManager
}

func NewOptimizationJobRepo(pool *pgxpool.Pool, tm repository.TransactionManager) *optimizationJobRepo {
	return &optimizationJobRepo{pool: pool, tm: tm}
}

func (r *optimizationJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.OptimizationJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.UpdatedAt = time.Now()

	// Terminal states are immutable: the conflict branch refuses to touch a
	// job that already completed or failed.
	const q = `
INSERT INTO optimization_jobs (id, order_id, status, last_error, enqueued_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  status = EXCLUDED.status,
  last_error = EXCLUDED.last_error,
  updated_at = EXCLUDED.updated_at
WHERE optimization_jobs.status NOT IN ('completed', 'failed');`

	_, err := execSQL(ctx, r.pool, tx, q,
		job.ID, job.OrderID, job.Status, job.LastError, job.EnqueuedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *optimizationJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.OptimizationJob, error) {
	const q = `
SELECT id, order_id, status, last_error, enqueued_at, updated_at
FROM optimization_jobs
WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanJob(row)
}

// FetchAndMarkRunning atomically claims the oldest queued job and marks it
// running so no other worker picks it up.
func (r *optimizationJobRepo) FetchAndMarkRunning(ctx context.Context) (*model.OptimizationJob, error) {
	var job *model.OptimizationJob

	err := r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		const fetchQuery = `
SELECT id, order_id, status, last_error, enqueued_at, updated_at
FROM optimization_jobs
WHERE status = 'queued'
ORDER BY enqueued_at
LIMIT 1
FOR UPDATE SKIP LOCKED;`

		row, err := pickRow(ctx, r.pool, tx, fetchQuery)
		if err != nil {
			return err
		}
		fetched, err := scanJob(row)
		if err != nil {
			return err
		}

		fetched.Status = model.OptimizationJobStatusRunning
		if err := r.Save(ctx, tx, fetched); err != nil {
			return err
		}

		job = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func scanJob(row pgx.Row) (*model.OptimizationJob, error) {
	var job model.OptimizationJob
	var statusStr string
	err := row.Scan(&job.ID, &job.OrderID, &statusStr, &job.LastError, &job.EnqueuedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	job.Status = model.OptimizationJobStatus(statusStr)
	return &job, nil
}
