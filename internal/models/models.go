// Package models defines the data structures (models) that map to database tables,
// plus the small amount of pure domain logic the Patient Management System has:
// computing a Body Mass Index and classifying it into a health verdict.
//
// GORM uses these structs to generate SQL queries and map database rows back to Go
// values. The struct field tags (the backtick strings like `gorm:"..."`) tell GORM
// how to handle each field: its column type, constraints, and default values.
//
// The data model is deliberately tiny — a single Patient entity. BMI and the
// verdict are DERIVED values: they are never stored as independent truth, only
// recomputed from height and weight whenever a record is read or updated. Storing
// them would create a second source of truth that could drift out of sync.
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string
// type plus constants. This gives us type safety — you can't accidentally pass a
// Gender where a Verdict is expected — while keeping the values human-readable in
// the database and in JSON responses.

// Gender is an optional demographic attribute on a patient record.
// Input is normalised (see NormalizeGender) so "male" and "MALE" both become "Male".
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOthers Gender = "Others" // Any identity outside the other two labels
)

// Verdict is the categorical health classification derived from a patient's BMI.
// The thresholds follow the standard WHO-style bands (see VerdictFor).
type Verdict string

const (
	VerdictUnderweight Verdict = "Underweight" // bmi < 18.5
	VerdictNormal      Verdict = "Normal"      // 18.5 <= bmi < 25
	VerdictOverweight  Verdict = "Overweight"  // 25 <= bmi < 30
	VerdictObese       Verdict = "Obese"       // bmi >= 30
)

// --- Models ---

// Patient is the sole entity in the system: one row per registered patient.
// GORM maps the struct to the "patients" table (struct name snake_cased and
// pluralized by default).
//
// Units are fixed and part of the contract:
//   - Height is in METERS (e.g., 1.75)
//   - Weight is in KILOGRAMS (e.g., 70.2)
//
// BMI = weight / height² only works out to the familiar 18–30 range with these
// units, so they are not negotiable — a height in centimeters would make every
// BMI come out 10,000x too small.
//
// The validate tags are read by go-playground/validator (see validation.go).
// They encode the record invariants: non-empty name, age within a plausible
// human range, strictly positive height and weight (height is a divisor, so
// zero would mean dividing by zero), and a gender from the known set.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`                              // Assigned by the service on creation; immutable thereafter
	Name      string    `gorm:"not null" validate:"required"`                                                // Display name; must be non-empty
	City      string    `gorm:"not null;default:''"`                                                         // Optional; empty string when not provided
	Age       int       `gorm:"not null" validate:"gte=0,lte=150"`                                           // Whole years, 0–150 inclusive
	Gender    Gender    `gorm:"type:text;not null;default:''" validate:"omitempty,oneof=Male Female Others"` // Optional; "" means unspecified
	Height    float64   `gorm:"type:decimal(5,2);not null" validate:"gt=0"`                                  // Meters; strictly positive
	Weight    float64   `gorm:"type:decimal(5,2);not null" validate:"gt=0"`                                  // Kilograms; strictly positive
	CreatedAt time.Time // GORM automatically sets this on create; also defines the listing order
	UpdatedAt time.Time // GORM automatically updates this on every save
}

// BMI computes the Body Mass Index for a height in meters and a weight in
// kilograms. It is a pure function: no side effects, same output for the same
// inputs, which makes it trivially testable.
//
// The caller is responsible for ensuring height > 0 (validation rejects
// non-positive heights before any record is stored, so division by zero cannot
// happen on stored data).
func BMI(heightMeters, weightKg float64) float64 {
	return weightKg / (heightMeters * heightMeters)
}

// VerdictFor classifies a BMI value into its health band.
//
// The bands are half-open intervals [low, high): a boundary value always
// belongs to the UPPER band. So exactly 18.5 is Normal, exactly 25.0 is
// Overweight, and exactly 30.0 is Obese. This convention is fixed here (and
// pinned by tests) because boundary handling is the one place ambiguity can
// creep into an otherwise trivial calculation.
func VerdictFor(bmi float64) Verdict {
	switch {
	case bmi < 18.5:
		return VerdictUnderweight
	case bmi < 25:
		return VerdictNormal
	case bmi < 30:
		return VerdictOverweight
	default:
		return VerdictObese
	}
}

// BMI returns the patient's Body Mass Index, recomputed from the stored height
// and weight. Derived attributes are recomputed on every read, never cached.
func (p *Patient) BMI() float64 {
	return BMI(p.Height, p.Weight)
}

// Verdict returns the health classification for the patient's current BMI.
func (p *Patient) Verdict() Verdict {
	return VerdictFor(p.BMI())
}
