// memory.go — In-memory Registry implementation.
//
// Used when no DATABASE_URL is configured, and by the test suite: it needs no
// external services and behaves identically to the Postgres implementation at
// the interface level. Records live only as long as the process.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/models"
)

// Memory stores patient records in a map guarded by a single mutex.
//
// One coarse lock is deliberate: the dataset is small and every operation is a
// quick map/slice touch, so finer-grained locking would add complexity for no
// measurable gain. The lock serialises mutations against each other AND
// against reads, which is exactly the guarantee needed to prevent lost
// updates.
//
// The order slice remembers insertion order, because Go map iteration order is
// randomised and List must return records in the order they were created.
type Memory struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]models.Patient // Records stored BY VALUE — the map owns its copies
	order []uuid.UUID                  // IDs in creation order, for stable listing
}

// Compile-time check that Memory satisfies the Registry interface.
var _ Registry = (*Memory)(nil)

// NewMemory returns an empty in-memory registry ready for use.
func NewMemory() *Memory {
	return &Memory{byID: make(map[uuid.UUID]models.Patient)}
}

// Create assigns a new UUID and timestamps, then stores a copy of the record.
func (m *Memory) Create(_ context.Context, p *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The service assigns identity — any id the caller set is overwritten.
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	// Store by value: the map keeps its own copy, so later mutations of the
	// caller's struct can't reach inside the registry.
	m.byID[p.ID] = *p
	m.order = append(m.order, p.ID)
	return nil
}

// List returns copies of all records in insertion order.
func (m *Memory) List(_ context.Context) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Patient, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

// Get returns a copy of one record, or ErrNotFound.
func (m *Memory) Get(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// p is already a copy (map access on a value type), safe to hand out.
	return &p, nil
}

// Update applies mutate to the stored record while holding the lock.
// The mutation runs on a scratch copy: if mutate returns an error (e.g. the
// merged record failed validation), the stored record is untouched.
func (m *Memory) Update(_ context.Context, id uuid.UUID, mutate func(*models.Patient) error) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if err := mutate(&p); err != nil {
		return nil, err
	}

	// The id is immutable regardless of what the callback did.
	p.ID = id
	p.UpdatedAt = time.Now().UTC()
	m.byID[id] = p

	out := p
	return &out, nil
}

// Delete removes a record, or returns ErrNotFound.
func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)

	// Drop the id from the order slice too, keeping List consistent.
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
