package repository

import (
	"context"

	"freight-assignment-engine/internal/domain/model"
)

// OrderRepository is the read-only view of orders this service consumes.
type OrderRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.Order, error)
}
