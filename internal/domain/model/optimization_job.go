package model

import "time"

type OptimizationJobStatus string

const (
	OptimizationJobStatusQueued    OptimizationJobStatus = "queued"
	OptimizationJobStatusRunning   OptimizationJobStatus = "running"
	OptimizationJobStatusCompleted OptimizationJobStatus = "completed"
	OptimizationJobStatusFailed    OptimizationJobStatus = "failed"
)

// OptimizationJob is one unit of queued work: "optimize the assignment for
// this order". Multiple jobs for the same order may coexist; processing is
// idempotent so duplicates are harmless.
type OptimizationJob struct {
	ID         string
	OrderID    string
	Status     OptimizationJobStatus
	LastError  string
	EnqueuedAt time.Time
	UpdatedAt  time.Time
}

// IsTerminal reports whether the job reached a final state. Terminal jobs
// must never transition again.
func (j *OptimizationJob) IsTerminal() bool {
	return j.Status == OptimizationJobStatusCompleted || j.Status == OptimizationJobStatusFailed
}
