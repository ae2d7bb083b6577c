package usecase

import (
	"context"
	"sync"
	"time"

	"freight-assignment-engine/internal/domain"
	"freight-assignment-engine/internal/domain/model"
	"freight-assignment-engine/internal/domain/ports/repository"
)

// memOrderRepo is a small in-memory implementation used by unit tests.
type memOrderRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{store: make(map[string]*model.Order)}
}

func (m *memOrderRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) put(o *model.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.store[o.ID] = &cp
}

type memShipmentRepo struct {
	mu        sync.RWMutex
	shipments []model.Shipment
	listErr   error
}

func newMemShipmentRepo(shipments ...model.Shipment) *memShipmentRepo {
	return &memShipmentRepo{shipments: shipments}
}

func (m *memShipmentRepo) ListAll(ctx context.Context, tx repository.Tx) ([]model.Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Shipment, len(m.shipments))
	copy(out, m.shipments)
	return out, nil
}

// memAssignmentRepo records upserts keyed by the (orderID, shipmentID) pair,
// mirroring the store's idempotent composite key.
type memAssignmentRepo struct {
	mu        sync.Mutex
	rows      map[string]*model.Assignment
	upsertErr error // used by tests to simulate store failures
	calls     int
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{rows: make(map[string]*model.Assignment)}
}

func (m *memAssignmentRepo) Upsert(ctx context.Context, tx repository.Tx, a *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := a.OrderID + "|" + a.ShipmentID
	if _, ok := m.rows[key]; ok {
		return nil // second upsert of the same pair is a no-op
	}
	cp := *a
	m.rows[key] = &cp
	return nil
}

func (m *memAssignmentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memAssignmentRepo) has(orderID, shipmentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[orderID+"|"+shipmentID]
	return ok
}

type memDecisionCache struct {
	mu        sync.Mutex
	decisions map[string]*model.CachedDecision
	setErr    error // used by tests to simulate cache failures
	calls     int
}

func newMemDecisionCache() *memDecisionCache {
	return &memDecisionCache{decisions: make(map[string]*model.CachedDecision)}
}

func (m *memDecisionCache) SetDecision(ctx context.Context, d *model.CachedDecision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.setErr != nil {
		return m.setErr
	}
	cp := *d
	m.decisions[d.OrderID] = &cp
	return nil
}

func (m *memDecisionCache) get(orderID string) *model.CachedDecision {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decisions[orderID]
}

type memJobRepo struct {
	mu      sync.Mutex
	jobs    map[string]*model.OptimizationJob
	order   []string // insertion order, stands in for enqueued_at ordering
	saveErr error
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*model.OptimizationJob)}
}

func (m *memJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.OptimizationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if existing, ok := m.jobs[job.ID]; ok && existing.IsTerminal() {
		return nil // terminal states are immutable
	}
	if _, ok := m.jobs[job.ID]; !ok {
		m.order = append(m.order, job.ID)
	}
	cp := *job
	cp.UpdatedAt = time.Now()
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.OptimizationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (m *memJobRepo) FetchAndMarkRunning(ctx context.Context) (*model.OptimizationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		j := m.jobs[id]
		if j.Status == model.OptimizationJobStatusQueued {
			j.Status = model.OptimizationJobStatusRunning
			cp := *j
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}
