package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

var _ repository.AssignmentRepository = (*assignmentRepo)(nil)

type assignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepo(pool *pgxpool.Pool) *assignmentRepo {
	return &assignmentRepo{pool: pool}
}

// Upsert inserts the (order_id, shipment_id) pairing; a second call with the
// same pair hits the unique key and is a no-op. A foreign key violation means
// the order or shipment vanished between scoring and the write.
func (r *assignmentRepo) Upsert(ctx context.Context, tx repository.Tx, a *model.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	const q = `
INSERT INTO order_shipments (id, order_id, shipment_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (order_id, shipment_id) DO NOTHING;`

	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.OrderID, a.ShipmentID, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
