package ring

import (
	"fmt"
	"math"
	"strings"
)

// Type is a ring shape category.
type Type string

const (
	Convex     Type = "CX"
	Concave    Type = "CC"
	ThreePoint Type = "3P"
)

// Types lists the supported ring types in display order.
var Types = []Type{Convex, Concave, ThreePoint}

// ParseType accepts the short codes and long names, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CX", "CONVEX":
		return Convex, nil
	case "CC", "CONCAVE":
		return Concave, nil
	case "3P", "THREEPOINT", "THREE-POINT":
		return ThreePoint, nil
	}
	return "", fmt.Errorf("Invalid ring type: %s. Valid types are: CX, CC, 3P", s)
}

// MinHeight is the smallest print height for any ring, in mm.
const MinHeight = 2.0

// Params are validated backend-side ring parameters.
type Params struct {
	Type          Type
	OuterDiameter float64
	InnerDiameter float64
	Height        float64
}

// NewParams checks diameters and derives the print height from the wall
// thickness, never going below MinHeight.
func NewParams(t Type, outer, inner float64) (Params, error) {
	if outer <= inner {
		return Params{}, fmt.Errorf("Outer diameter must be greater than inner diameter")
	}
	if outer <= 0 || inner <= 0 {
		return Params{}, fmt.Errorf("Diameters must be positive")
	}
	return Params{
		Type:          t,
		OuterDiameter: outer,
		InnerDiameter: inner,
		Height:        math.Max(WallThickness(outer, inner), MinHeight),
	}, nil
}

// Wall returns the wall thickness in mm.
func (p Params) Wall() float64 {
	return WallThickness(p.OuterDiameter, p.InnerDiameter)
}

// Filename is the STL file name for these parameters, e.g. "CX-18.0.stl".
func (p Params) Filename() string {
	return fmt.Sprintf("%s-%.1f.stl", p.Type, p.InnerDiameter)
}

// WallThickness is (outer-inner)/2.
func WallThickness(outer, inner float64) float64 {
	return (outer - inner) / 2
}
