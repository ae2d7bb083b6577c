package repository

import (
	"context"

	"freight-assignment-engine/internal/domain/model"
)

// AssignmentRepository is the system-of-record for order-shipment pairings.
type AssignmentRepository interface {
	// Upsert creates the (orderID, shipmentID) pairing if absent and is a
	// no-op if it already exists. Returns domain.ErrNotFound when the order
	// or shipment no longer exists, domain.ErrStoreUnavailable on any other
	// persistence failure.
	Upsert(ctx context.Context, tx Tx, a *model.Assignment) error
}
