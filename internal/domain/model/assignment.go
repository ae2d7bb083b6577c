package model

import "time"

// Assignment links an order to the shipment chosen for it. The logical key is
// the (OrderID, ShipmentID) pair; upserting the same pair twice is a no-op.
type Assignment struct {
	ID         string
	OrderID    string
	ShipmentID string
	CreatedAt  time.Time
}

// CachedDecision is the disposable record of the latest optimization outcome
// for an order. Readers must treat the assignment store as authoritative;
// a missing cache entry is a miss, never an error.
type CachedDecision struct {
	OrderID     string    `json:"-"`
	ShipmentID  string    `json:"shipmentId"`
	OptimizedAt time.Time `json:"optimizedAt"`
	Score       int       `json:"score"`
}
