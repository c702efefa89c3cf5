// Package handlers contains the HTTP route handler functions for the Patient
// Management System API. This file handles the /patients routes — creating,
// listing, fetching, updating, and deleting patient records.
//
// Each exported function follows the "handler factory" pattern: it takes the
// patient registry (and a logger) and returns a fiber.Handler — a function
// that handles a single HTTP request. This lets us inject dependencies
// without using global variables, and lets the tests run the handlers against
// an in-memory registry.
//
// --- Error contract ---
// Three failure shapes, matching the status codes clients key off:
//   - 400 Bad Request           — malformed JSON body or bad query parameters
//   - 404 Not Found             — no patient with the requested id
//   - 422 Unprocessable Entity  — well-formed input that violates a record
//     invariant; the body names every offending field
//
// Storage failures (only possible on the postgres backend) surface as 500 and
// are logged with the real cause; clients get a generic message.
package handlers

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/models"
	"github.com/Utkarshnirmal11/Patient-Management-System-API/internal/registry"
)

// PatientResponse is what we send back to API clients.
// We use a dedicated response struct (instead of the raw GORM model) so we
// control exactly what fields are serialised to JSON and can add the computed
// fields bmi and verdict — which are derived on every response, never stored.
type PatientResponse struct {
	ID        string  `json:"id"`         // The patient's UUID as a string
	Name      string  `json:"name"`       // Display name
	City      string  `json:"city"`       // Free text; "" if not set
	Age       int     `json:"age"`        // Whole years
	Gender    string  `json:"gender"`     // "Male", "Female", "Others", or "" if not set
	Height    float64 `json:"height"`     // Meters
	Weight    float64 `json:"weight"`     // Kilograms
	BMI       float64 `json:"bmi"`        // Computed: weight / height²
	Verdict   string  `json:"verdict"`    // Computed: health band for the BMI
	CreatedAt string  `json:"created_at"` // ISO 8601 timestamp string
	UpdatedAt string  `json:"updated_at"` // ISO 8601 timestamp string
}

// CreatePatientRequest is the JSON body we expect on POST /patients.
// Missing numeric fields decode as zero — and zero fails the height/weight
// invariants during validation, so "field omitted" and "field invalid" are
// rejected the same way, each naming the field in the 422 response.
type CreatePatientRequest struct {
	Name   string  `json:"name"`   // Required: non-empty
	City   string  `json:"city"`   // Optional
	Age    int     `json:"age"`    // 0–150
	Gender string  `json:"gender"` // Optional: "Male", "Female", or "Others" (any casing)
	Height float64 `json:"height"` // Required: meters, > 0
	Weight float64 `json:"weight"` // Required: kilograms, > 0
}

// UpdatePatientRequest is the JSON body for PUT/PATCH /patients/:id.
// Every field is a POINTER so we can tell "not provided" (nil — keep the
// stored value) apart from "provided as zero" (e.g. explicitly setting age
// to 0). Only non-nil fields are merged onto the stored record.
type UpdatePatientRequest struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// toResponse converts a stored record into the API response shape, computing
// bmi and verdict from the record's current height and weight.
func toResponse(p *models.Patient) PatientResponse {
	bmi := p.BMI()
	return PatientResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		City:      p.City,
		Age:       p.Age,
		Gender:    string(p.Gender),
		Height:    p.Height,
		Weight:    p.Weight,
		BMI:       bmi,
		Verdict:   string(models.VerdictFor(bmi)),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// validationFailed builds the 422 response for a failed validation, listing
// every offending field so the client can fix them all in one round trip.
func validationFailed(c *fiber.Ctx, verr *models.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

// notFound is the single 404 shape used by every /patients/:id route.
func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "patient not found",
	})
}

// parseID parses the :id path parameter. An unparseable id (like "999" or
// "abc") cannot possibly name a stored record — the service only ever assigns
// UUIDs — so it is reported the same way as a missing one: 404.
func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// CreatePatient returns the handler for POST /patients.
// Flow: parse body → build the record → validate → store → 201 with the full
// record including bmi and verdict.
func CreatePatient(reg registry.Registry, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// c.BodyParser reads the body and unmarshals JSON fields that match
		// the struct tags. Failure here means the body isn't valid JSON at
		// all — that's a 400, not a 422 (there are no fields to name yet).
		var req CreatePatientRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		patient := models.Patient{
			Name:   strings.TrimSpace(req.Name),
			City:   strings.TrimSpace(req.City),
			Age:    req.Age,
			Gender: models.NormalizeGender(req.Gender),
			Height: req.Height,
			Weight: req.Weight,
		}

		// Validate BEFORE any mutation — a record that violates an invariant
		// is never stored, not even partially.
		if verr := models.Validate(&patient); verr != nil {
			return validationFailed(c, verr)
		}

		if err := reg.Create(c.Context(), &patient); err != nil {
			log.Error("failed to create patient", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create patient",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&patient))
	}
}

// sortKey returns the value a patient is sorted by for the given field.
// Only called after the field name has been validated.
func sortKey(p *models.Patient, field string) float64 {
	switch field {
	case "height":
		return p.Height
	case "weight":
		return p.Weight
	default: // "bmi"
		return p.BMI()
	}
}

// GetPatients returns the handler for GET /patients.
//
// Optional query params let clients sort the listing by a measurement:
//
//	GET /patients?sort_by=bmi&order=desc
//
// sort_by accepts "height", "weight" or "bmi"; order accepts "asc" (default)
// or "desc". Without sort_by, records come back in insertion order.
func GetPatients(reg registry.Registry, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sortBy := c.Query("sort_by") // empty string if not provided
		order := c.Query("order", "asc")

		// Reject unknown sort fields and orders up front with a message that
		// names the valid choices — these are query-parameter mistakes, so
		// 400 rather than the 422 reserved for record invariants.
		switch sortBy {
		case "", "height", "weight", "bmi":
			// valid
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "sort_by must be 'height', 'weight' or 'bmi'",
			})
		}
		switch order {
		case "asc", "desc":
			// valid
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "order must be 'asc' or 'desc'",
			})
		}

		patients, err := reg.List(c.Context())
		if err != nil {
			log.Error("failed to list patients", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch patients",
			})
		}

		if sortBy != "" {
			// SliceStable keeps insertion order between equal keys, so the
			// listing stays deterministic even with duplicate measurements.
			sort.SliceStable(patients, func(i, j int) bool {
				a, b := sortKey(&patients[i], sortBy), sortKey(&patients[j], sortBy)
				if order == "desc" {
					return a > b
				}
				return a < b
			})
		}

		response := make([]PatientResponse, 0, len(patients))
		for i := range patients {
			response = append(response, toResponse(&patients[i]))
		}
		return c.JSON(response)
	}
}

// GetPatient returns the handler for GET /patients/:id.
func GetPatient(reg registry.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return notFound(c)
		}

		patient, err := reg.Get(c.Context(), id)
		if errors.Is(err, registry.ErrNotFound) {
			return notFound(c)
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch patient",
			})
		}

		return c.JSON(toResponse(patient))
	}
}

// UpdatePatient returns the handler for PUT /patients/:id and PATCH
// /patients/:id. Both verbs behave the same partial-merge way: fields present
// in the body replace the stored values, fields absent are kept.
//
// The merge and re-validation run inside the registry's Update callback, i.e.
// inside its critical section. That makes the update ATOMIC in both senses:
// a concurrent update can't interleave (no lost updates), and a merged record
// that fails validation is never stored — the callback's error aborts the
// whole operation with the stored record untouched.
func UpdatePatient(reg registry.Registry, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return notFound(c)
		}

		var req UpdatePatientRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		updated, err := reg.Update(c.Context(), id, func(p *models.Patient) error {
			// Merge: only fields the client actually sent (non-nil pointers)
			// overwrite the stored values.
			if req.Name != nil {
				p.Name = strings.TrimSpace(*req.Name)
			}
			if req.City != nil {
				p.City = strings.TrimSpace(*req.City)
			}
			if req.Age != nil {
				p.Age = *req.Age
			}
			if req.Gender != nil {
				p.Gender = models.NormalizeGender(*req.Gender)
			}
			if req.Height != nil {
				p.Height = *req.Height
			}
			if req.Weight != nil {
				p.Weight = *req.Weight
			}

			// Re-validate the MERGED record: one bad field rejects the whole
			// update. The explicit nil check matters — returning a typed nil
			// *ValidationError directly would make the error interface non-nil.
			if verr := models.Validate(p); verr != nil {
				return verr
			}
			return nil
		})

		if err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				return notFound(c)
			}
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				return validationFailed(c, verr)
			}
			log.Error("failed to update patient", zap.String("id", id.String()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update patient",
			})
		}

		return c.JSON(toResponse(updated))
	}
}

// DeletePatient returns the handler for DELETE /patients/:id.
func DeletePatient(reg registry.Registry, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return notFound(c)
		}

		err := reg.Delete(c.Context(), id)
		if errors.Is(err, registry.ErrNotFound) {
			return notFound(c)
		}
		if err != nil {
			log.Error("failed to delete patient", zap.String("id", id.String()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete patient",
			})
		}

		return c.JSON(fiber.Map{
			"message": "patient record deleted successfully",
		})
	}
}
