package model

import (
	"strings"
	"time"
)

const MilestoneStatusDelayed = "delayed"

type Milestone struct {
	ID         string
	ShipmentID string
	Status     string
	Location   string
	OccurredAt time.Time
}

// Shipment is owned by the shipment-management side; this service only reads it.
type Shipment struct {
	ID             string
	ShipmentNumber string
	Origin         string
	Destination    string
	CarrierID      string
	Mode           string
	TrackingNumber string
	Milestones     []Milestone
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasDelayedMilestone reports whether any milestone carries a "delayed"
// status. Milestone statuses come from external carriers with inconsistent
// casing, so the comparison is case-insensitive.
func (s *Shipment) HasDelayedMilestone() bool {
	for _, m := range s.Milestones {
		if strings.EqualFold(m.Status, MilestoneStatusDelayed) {
			return true
		}
	}
	return false
}
