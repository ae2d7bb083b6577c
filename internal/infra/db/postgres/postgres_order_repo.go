package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

var _ repository.OrderRepository = (*orderRepo)(nil)

type orderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *orderRepo {
	return &orderRepo{pool: pool}
}

func (r *orderRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Order, error) {
	const q = `
SELECT id, order_number, COALESCE(customer_ref, ''), status, priority, pickup_date, delivery_date, created_at, updated_at
FROM orders
WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}

	var o model.Order
	var statusStr string
	err = row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerRef, &statusStr, &o.Priority,
		&o.PickupDate, &o.DeliveryDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	o.Status = model.OrderStatus(statusStr)
	return &o, nil
}
