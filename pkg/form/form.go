// Package form validates the ring form before anything is sent to the
// backend. Validation is pure; callers decide how to mark bad fields.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chazu/ringforge/pkg/ring"
)

// MinWall is the thinnest printable wall, in mm.
const MinWall = 1.0

// Field identifies a form input.
type Field string

const (
	FieldRingType      Field = "ring-type"
	FieldOuterDiameter Field = "outer-diameter"
	FieldInnerDiameter Field = "inner-diameter"
)

// ValidationError is a user-facing input error. It never reaches the backend.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Values are validated form values, returned unchanged from the input.
type Values struct {
	RingType      string
	OuterDiameter float64
	InnerDiameter float64
}

// Request converts validated values into a backend request.
func (v Values) Request(outputPath *string) ring.Request {
	return ring.Request{
		RingType:      v.RingType,
		OuterDiameter: v.OuterDiameter,
		InnerDiameter: v.InnerDiameter,
		OutputPath:    outputPath,
	}
}

// Validate checks the form in a fixed order and reports the first failure.
func Validate(ringType string, outer, inner float64) (Values, error) {
	if ringType == "" {
		return Values{}, &ValidationError{Field: FieldRingType, Message: "Please select a ring type"}
	}
	if !positive(outer) {
		return Values{}, &ValidationError{Field: FieldOuterDiameter, Message: "Please enter a valid outer diameter"}
	}
	if !positive(inner) {
		return Values{}, &ValidationError{Field: FieldInnerDiameter, Message: "Please enter a valid inner diameter"}
	}
	if outer <= inner {
		return Values{}, &ValidationError{Field: FieldInnerDiameter, Message: "Outer diameter must be greater than inner diameter"}
	}
	if wall := ring.WallThickness(outer, inner); wall < MinWall {
		return Values{}, &ValidationError{
			Field:   FieldInnerDiameter,
			Message: fmt.Sprintf("Wall thickness (%.2fmm) is too thin. Minimum recommended: 1.0mm", wall),
		}
	}
	return Values{RingType: ringType, OuterDiameter: outer, InnerDiameter: inner}, nil
}

// ValidateText parses the raw field text and validates it.
func ValidateText(ringType, outer, inner string) (Values, error) {
	return Validate(ringType, ParseDiameter(outer), ParseDiameter(inner))
}

// ParseDiameter parses a numeric field. Anything unparseable becomes NaN,
// which Validate rejects.
func ParseDiameter(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// InnerMax is the largest inner diameter that keeps a 1mm wall.
func InnerMax(outer float64) float64 {
	return outer - 2*MinWall
}

func positive(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f > 0
}
