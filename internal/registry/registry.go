// Package registry owns the collection of patient records.
//
// The registry is an explicit object constructed at process start and injected
// into the HTTP handlers — never ambient global state. That keeps the storage
// layer swappable (in-memory for tests and zero-setup runs, Postgres for real
// deployments) and testable in isolation.
//
// Two implementations live in this package:
//   - Memory   (memory.go)   — map + slice guarded by a single mutex
//   - Postgres (postgres.go) — GORM-backed, transactional
//
// Both satisfy the Registry interface below, so the rest of the application
// doesn't know or care which one it was given.
package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/models"
)

// ErrNotFound is returned by Get, Update and Delete when no record exists for
// the given id. Handlers translate it into an HTTP 404. Defined as a sentinel
// (package-level errors.New) so callers can test for it with errors.Is.
var ErrNotFound = errors.New("patient not found")

// Registry is the storage contract for patient records.
//
// Every method takes a context.Context so a backing store that talks to a real
// database can honour request cancellation and timeouts; the in-memory
// implementation simply ignores it.
//
// Update deserves a note: instead of taking a ready-made record, it takes a
// mutate callback that is invoked on the CURRENT stored record inside the
// registry's critical section (mutex or database transaction). The caller
// merges fields and re-validates inside the callback; returning an error
// aborts the update and leaves the stored record untouched. This makes
// read-modify-write atomic without leaking locking details out of the
// registry — two concurrent updates can never interleave into a lost update.
type Registry interface {
	// Create assigns a fresh unique id to the patient, stores it, and fills in
	// the record's timestamps. The passed struct is updated in place.
	Create(ctx context.Context, p *models.Patient) error

	// List returns all stored records in insertion order. The slice is a copy;
	// mutating it does not affect the registry. May be empty, never nil.
	List(ctx context.Context) ([]models.Patient, error)

	// Get returns a copy of the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*models.Patient, error)

	// Update atomically applies mutate to the stored record with the given id.
	// Returns ErrNotFound if the id is absent; returns the callback's error
	// (with the stored record unchanged) if mutate fails; otherwise stores the
	// mutated record and returns a copy of it.
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Patient) error) (*models.Patient, error)

	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
