// validation.go — The explicit validation step that runs before any patient
// record is created or updated.
//
// The invariants themselves live as `validate` struct tags on the Patient model
// (models.go); this file turns the validator library's raw output into a
// structured ValidationError that names every offending field, so API clients
// learn exactly what to fix instead of getting a generic "bad request".
package models

import (
	"fmt"
	"strings"

	// validator checks struct fields against the rules declared in their
	// `validate` tags (required, gt, lte, oneof, ...). Declaring the rules next
	// to the fields keeps the invariants and the data in one place.
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. The library caches struct
// metadata internally, so one instance is created once and reused — this is
// the usage pattern the validator docs recommend.
var validate = validator.New()

// FieldError describes a single invalid field: which field, and why.
type FieldError struct {
	Field   string `json:"field"`   // JSON-style (lowercase) field name, e.g. "age"
	Message string `json:"message"` // Human-readable rule description, e.g. "must be at most 150"
}

// ValidationError is returned when a patient record violates one or more
// invariants. It implements the error interface so it can travel through
// normal error returns, and handlers can pick it out with errors.As to build
// a 422 response listing every failed field.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface by joining the field names, so even a
// plain %v log line shows what was wrong.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// NormalizeGender capitalises gender input the way the API documents it:
// "male" → "Male", "FEMALE" → "Female". Normalising before validation means
// clients don't have to get the casing exactly right, while the stored value
// stays canonical. Unknown values pass through unchanged and are then caught
// by the oneof rule.
func NormalizeGender(g string) Gender {
	if g == "" {
		return ""
	}
	lower := strings.ToLower(g)
	return Gender(strings.ToUpper(lower[:1]) + lower[1:])
}

// Validate checks a Patient against all record invariants and returns nil on
// success, or a *ValidationError naming each failed field.
//
// This is called before every mutation (create and update). For updates it
// runs on the fully merged record, so an update either passes as a whole and
// is stored, or fails as a whole and leaves the stored record untouched.
func Validate(p *Patient) *ValidationError {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	// validate.Struct returns a validator.ValidationErrors (a slice of
	// per-field errors) for rule violations. The type assertion guards the
	// only other possibility — an *InvalidValidationError for a non-struct
	// argument — which cannot happen here since we always pass *Patient.
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: []FieldError{{Field: "patient", Message: "invalid record"}}}
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			// err.Field() gives the Go field name ("Height"); lowercase it to
			// match the JSON names clients actually sent.
			Field:   strings.ToLower(fe.Field()),
			Message: messageFor(fe),
		})
	}
	return out
}

// messageFor translates a validator tag violation into a human-readable
// message. Only the tags used on the Patient model need handling; anything
// new falls back to a generic message rather than crashing.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "is invalid"
	}
}
