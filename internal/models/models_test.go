package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Floating-point comparisons use a tight tolerance: the BMI formula is a
// single division, so results should match the reference value essentially
// exactly.
const tolerance = 1e-9

func TestBMI(t *testing.T) {
	// Alice: 70 kg at 1.70 m → 70 / 2.89 ≈ 24.22
	assert.InDelta(t, 70.0/(1.70*1.70), BMI(1.70, 70.0), tolerance)
	assert.InDelta(t, 24.22, BMI(1.70, 70.0), 0.005)

	// Bob: 100 kg at 1.80 m → ≈ 30.86
	assert.InDelta(t, 100.0/(1.80*1.80), BMI(1.80, 100.0), tolerance)
	assert.InDelta(t, 30.86, BMI(1.80, 100.0), 0.005)
}

// TestVerdictFor pins the band table, and in particular the boundary rule:
// half-open intervals, so an exact boundary value belongs to the UPPER band.
func TestVerdictFor(t *testing.T) {
	tests := []struct {
		bmi  float64
		want Verdict
	}{
		{10.0, VerdictUnderweight},
		{18.49, VerdictUnderweight},
		{18.5, VerdictNormal}, // boundary → upper band
		{22.0, VerdictNormal},
		{24.99, VerdictNormal},
		{25.0, VerdictOverweight}, // boundary → upper band
		{29.99, VerdictOverweight},
		{30.0, VerdictObese}, // boundary → upper band
		{45.0, VerdictObese},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictFor(tt.bmi), "bmi=%v", tt.bmi)
	}
}

func TestPatientDerivedFields(t *testing.T) {
	alice := Patient{Name: "Alice", Age: 30, Height: 1.70, Weight: 70.0}
	assert.InDelta(t, 70.0/(1.70*1.70), alice.BMI(), tolerance)
	assert.Equal(t, VerdictNormal, alice.Verdict())

	bob := Patient{Name: "Bob", Age: 40, Height: 1.80, Weight: 100.0}
	assert.Equal(t, VerdictObese, bob.Verdict())
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, GenderMale, NormalizeGender("male"))
	assert.Equal(t, GenderMale, NormalizeGender("MALE"))
	assert.Equal(t, GenderFemale, NormalizeGender("Female"))
	assert.Equal(t, GenderOthers, NormalizeGender("others"))
	assert.Equal(t, Gender(""), NormalizeGender(""))
	// Unknown values pass through (and are later rejected by validation)
	assert.Equal(t, Gender("Wizard"), NormalizeGender("wizard"))
}

func TestValidateAcceptsValidPatient(t *testing.T) {
	p := Patient{Name: "Alice", City: "Berlin", Age: 30, Gender: GenderFemale, Height: 1.70, Weight: 70.0}
	assert.Nil(t, Validate(&p))

	// Optional fields may be absent; age 0 (a newborn) is within range.
	newborn := Patient{Name: "Baby", Age: 0, Height: 0.50, Weight: 3.5}
	assert.Nil(t, Validate(&newborn))

	// The upper age bound is inclusive.
	elder := Patient{Name: "Jeanne", Age: 150, Height: 1.50, Weight: 45.0}
	assert.Nil(t, Validate(&elder))
}

// fieldNames extracts the named fields from a validation error for assertions.
func fieldNames(verr *ValidationError) []string {
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateNamesOffendingFields(t *testing.T) {
	tests := []struct {
		name    string
		patient Patient
		fields  []string
	}{
		{
			name:    "negative age",
			patient: Patient{Name: "Eve", Age: -5, Height: 1.60, Weight: 60.0},
			fields:  []string{"age"},
		},
		{
			name:    "age above range",
			patient: Patient{Name: "Methuselah", Age: 151, Height: 1.70, Weight: 70.0},
			fields:  []string{"age"},
		},
		{
			name:    "empty name",
			patient: Patient{Age: 30, Height: 1.70, Weight: 70.0},
			fields:  []string{"name"},
		},
		{
			name:    "zero height",
			patient: Patient{Name: "Flat", Age: 30, Height: 0, Weight: 70.0},
			fields:  []string{"height"},
		},
		{
			name:    "negative weight",
			patient: Patient{Name: "Void", Age: 30, Height: 1.70, Weight: -1},
			fields:  []string{"weight"},
		},
		{
			name:    "unknown gender",
			patient: Patient{Name: "Who", Age: 30, Gender: "Wizard", Height: 1.70, Weight: 70.0},
			fields:  []string{"gender"},
		},
		{
			name:    "multiple violations reported together",
			patient: Patient{Age: -1, Height: 0, Weight: 0},
			fields:  []string{"name", "age", "height", "weight"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Validate(&tt.patient)
			require.NotNil(t, verr)
			assert.ElementsMatch(t, tt.fields, fieldNames(verr))
			// Every field error carries a message, and Error() mentions the fields.
			for _, f := range verr.Fields {
				assert.NotEmpty(t, f.Message)
				assert.Contains(t, verr.Error(), f.Field)
			}
		})
	}
}
