package repository

import (
	"context"

	"freight-assignment-engine/internal/domain/model"
)

// ShipmentRepository is the read-only view of candidate shipments.
// ListAll returns every shipment in the system with its milestones; the
// optimizer scores over the full set, there is no availability predicate.
type ShipmentRepository interface {
	ListAll(ctx context.Context, tx Tx) ([]model.Shipment, error)
}
