package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

var _ repository.ShipmentRepository = (*shipmentRepo)(nil)

type shipmentRepo struct {
	pool *pgxpool.Pool
}

func NewShipmentRepo(pool *pgxpool.Pool) *shipmentRepo {
	return &shipmentRepo{pool: pool}
}

// ListAll loads every shipment with its milestones. Shipments come back in
// creation order so repeated runs score candidates in a stable sequence.
func (r *shipmentRepo) ListAll(ctx context.Context, tx repository.Tx) ([]model.Shipment, error) {
	const qShipments = `
SELECT id, shipment_number, origin, destination, COALESCE(carrier_id, ''), mode, COALESCE(tracking_number, ''), created_at, updated_at
FROM shipments
ORDER BY created_at, id;`

	rows, err := queryRows(ctx, r.pool, tx, qShipments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var shipments []model.Shipment
	index := make(map[string]int)
	for rows.Next() {
		var s model.Shipment
		err := rows.Scan(
			&s.ID, &s.ShipmentNumber, &s.Origin, &s.Destination, &s.CarrierID,
			&s.Mode, &s.TrackingNumber, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		index[s.ID] = len(shipments)
		shipments = append(shipments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	const qMilestones = `
SELECT id, shipment_id, status, COALESCE(location, ''), occurred_at
FROM milestones
ORDER BY shipment_id, occurred_at;`

	mrows, err := queryRows(ctx, r.pool, tx, qMilestones)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var m model.Milestone
		if err := mrows.Scan(&m.ID, &m.ShipmentID, &m.Status, &m.Location, &m.OccurredAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		if i, ok := index[m.ShipmentID]; ok {
			shipments[i].Milestones = append(shipments[i].Milestones, m)
		}
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return shipments, nil
}
