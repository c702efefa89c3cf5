// postgres.go — GORM-backed Registry implementation for durable storage.
//
// Chosen when DATABASE_URL is configured. The schema is created by the SQL
// migration files in migrations/ (run at startup, see internal/database), not
// by GORM auto-migration, so the schema is versioned and reviewable.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	// clause provides query modifiers like SELECT ... FOR UPDATE row locking.
	"gorm.io/gorm/clause"

	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/models"
)

// Postgres stores patient records in a PostgreSQL table via GORM.
// Serialisation of concurrent writers is delegated to the database: updates
// run in a transaction holding a row lock, so two concurrent updates of the
// same patient queue up instead of clobbering each other.
type Postgres struct {
	db *gorm.DB
}

var _ Registry = (*Postgres)(nil)

// NewPostgres wraps an open GORM handle in a Registry.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// Create assigns a new UUID and inserts the record.
// The id is generated here rather than left to the database default so the
// two registry implementations behave identically and the caller always gets
// the id back without a round trip.
func (r *Postgres) Create(ctx context.Context, p *models.Patient) error {
	p.ID = uuid.New()
	// CreatedAt/UpdatedAt are filled in by GORM on insert.
	return r.db.WithContext(ctx).Create(p).Error
}

// List returns all records in insertion order.
// created_at alone can tie when two inserts land in the same microsecond, so
// id breaks the tie to keep the order deterministic.
func (r *Postgres) List(ctx context.Context) ([]models.Patient, error) {
	patients := make([]models.Patient, 0)
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&patients).Error
	return patients, err
}

// Get fetches one record by primary key, translating GORM's not-found error
// into the package's ErrNotFound sentinel so callers never import gorm just
// to check an error.
func (r *Postgres) Get(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var p models.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update runs the read-modify-write cycle inside a transaction.
//
// clause.Locking{Strength: "UPDATE"} makes the initial read a
// SELECT ... FOR UPDATE: the row stays locked until the transaction commits
// or rolls back, so a concurrent update of the same patient waits for this
// one to finish instead of reading a stale record. Returning an error from
// the transaction function (including the mutate callback's error) rolls the
// whole thing back — the stored record is untouched on validation failure.
func (r *Postgres) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Patient) error) (*models.Patient, error) {
	var updated models.Patient

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Patient
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := mutate(&p); err != nil {
			return err
		}

		// The id is immutable regardless of what the callback did.
		p.ID = id
		p.UpdatedAt = time.Now().UTC()

		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		updated = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &updated, nil
}

// Delete removes one record by id, mapping "zero rows affected" to
// ErrNotFound so deleting a missing patient is a 404, not a silent no-op.
func (r *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
