package repository

import (
	"context"

	"freight-assignment-engine/internal/domain/model"
)

// DecisionCacheRepository stores the latest optimization decision per order
// with a bounded TTL. Writes are best-effort: callers swallow errors, the
// assignment store stays authoritative.
type DecisionCacheRepository interface {
	SetDecision(ctx context.Context, d *model.CachedDecision) error
}
