package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
	"freight-assignment-engine/internal/infra/metrics"
)

const (
	originMismatchPenalty = 5
	delayedPenalty        = 10
)

// Score computes the penalty for pairing a shipment with an order. Lower is
// better. Two additive terms: an origin-affinity penalty (the shipment's
// origin matching the order's customer reference is a crude proxy for "this
// shipment already relates to this customer") and a delay penalty for any
// delayed milestone. A missing customer reference compares as the empty
// string, so an empty-origin shipment scores 0 against an order with no
// reference; that degenerate match is intentional.
func Score(order *model.Order, shipment *model.Shipment) int {
	score := 0
	if !strings.EqualFold(shipment.Origin, order.CustomerRef) {
		score += originMismatchPenalty
	}
	if shipment.HasDelayedMilestone() {
		score += delayedPenalty
	}
	return score
}

// SelectBest returns the lowest-scoring candidate, or nil when there are no
// candidates. Ties keep the first candidate in input order: the scan only
// replaces the current best on a strictly lower score.
func SelectBest(order *model.Order, candidates []model.Shipment) *model.Shipment {
	if len(candidates) == 0 {
		return nil
	}
	best := 0
	bestScore := Score(order, &candidates[0])
	for i := 1; i < len(candidates); i++ {
		if s := Score(order, &candidates[i]); s < bestScore {
			best = i
			bestScore = s
		}
	}
	return &candidates[best]
}

// OptimizeUseCase runs one optimization pass for an order: load state, pick
// the best shipment, persist the pairing, cache the decision.
type OptimizeUseCase interface {
	Optimize(ctx context.Context, orderID string) error
}

type optimizeUC struct {
	orders      repository.OrderRepository
	shipments   repository.ShipmentRepository
	assignments repository.AssignmentRepository
	cache       repository.DecisionCacheRepository
	log         *zerolog.Logger
}

var _ OptimizeUseCase = (*optimizeUC)(nil)

func NewOptimizeUseCase(
	orders repository.OrderRepository,
	shipments repository.ShipmentRepository,
	assignments repository.AssignmentRepository,
	cache repository.DecisionCacheRepository,
	log *zerolog.Logger,
) *optimizeUC {
	return &optimizeUC{
		orders:      orders,
		shipments:   shipments,
		assignments: assignments,
		cache:       cache,
		log:         log,
	}
}

// Optimize is safe to run more than once for the same order: the assignment
// upsert is idempotent and the cache write is last-write-wins. Only a store
// failure is returned as an error; a vanished order or an empty candidate
// set is a normal no-op outcome.
func (uc *optimizeUC) Optimize(ctx context.Context, orderID string) error {
	order, err := uc.orders.FindByID(ctx, nil, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Info().Str("order_id", orderID).Msg("order vanished before optimization, skipping")
			metrics.IncOptimizationOutcome("order_missing")
			return nil
		}
		return err
	}

	candidates, err := uc.shipments.ListAll(ctx, nil)
	if err != nil {
		return err
	}
	metrics.ObserveCandidateSetSize(len(candidates))

	best := SelectBest(order, candidates)
	if best == nil {
		uc.log.Info().Str("order_id", orderID).Msg("no candidate shipments, skipping")
		metrics.IncOptimizationOutcome("no_candidates")
		return nil
	}
	score := Score(order, best)

	assignment := &model.Assignment{
		OrderID:    order.ID,
		ShipmentID: best.ID,
		CreatedAt:  time.Now(),
	}
	if err := uc.assignments.Upsert(ctx, nil, assignment); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Order or shipment vanished between scoring and the write.
			uc.log.Info().Str("order_id", orderID).Str("shipment_id", best.ID).Msg("entity vanished before upsert, skipping")
			metrics.IncOptimizationOutcome("vanished")
			return nil
		}
		return err
	}

	// Best-effort side channel: a cache failure must never fail the run.
	decision := &model.CachedDecision{
		OrderID:     order.ID,
		ShipmentID:  best.ID,
		OptimizedAt: time.Now().UTC(),
		Score:       score,
	}
	if err := uc.cache.SetDecision(ctx, decision); err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("failed to cache optimization decision")
		metrics.IncCacheWrite("error")
	} else {
		metrics.IncCacheWrite("ok")
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("shipment_id", best.ID).
		Int("score", score).
		Msg("assignment optimized")
	metrics.IncOptimizationOutcome("assigned")
	return nil
}
