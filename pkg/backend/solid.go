package backend

import (
	"fmt"

	"github.com/chazu/ringforge/pkg/kernel"
	"github.com/chazu/ringforge/pkg/ring"
)

// padAngles places the three-point contact pads.
var padAngles = []float64{0, 120, 240}

// Solid builds the ring for p, centered on the origin with its axis on Z.
//
//	CX: full-height outer band with a half-height inner lip at mid-plane.
//	CC: full ring with a groove cut into the upper half of the bore.
//	3P: outer band with three pads reaching the inner diameter.
func Solid(k kernel.Kernel, p ring.Params) (kernel.Solid, error) {
	outer := p.OuterDiameter / 2
	inner := p.InnerDiameter / 2
	h := p.Height
	w := p.Wall()

	switch p.Type {
	case ring.Convex:
		band, err := annulus(k, h, outer, inner+w/2)
		if err != nil {
			return nil, err
		}
		lip, err := annulus(k, h/2, outer, inner)
		if err != nil {
			return nil, err
		}
		return k.Union(band, lip), nil

	case ring.Concave:
		body, err := annulus(k, h, outer, inner)
		if err != nil {
			return nil, err
		}
		groove, err := k.Cylinder(h/2, inner+w/2)
		if err != nil {
			return nil, err
		}
		return k.Difference(body, k.Translate(groove, 0, 0, h/4)), nil

	case ring.ThreePoint:
		solid, err := annulus(k, h, outer, inner+w/2)
		if err != nil {
			return nil, err
		}
		depth := 3 * w / 4
		for _, deg := range padAngles {
			pad, err := k.Box(depth, w/2, h)
			if err != nil {
				return nil, err
			}
			pad = k.Translate(pad, inner+depth/2, 0, 0)
			solid = k.Union(solid, k.RotateZ(pad, deg))
		}
		return solid, nil
	}
	return nil, fmt.Errorf("unsupported ring type %q", p.Type)
}

// annulus is a tube of height h between radii inner and outer.
func annulus(k kernel.Kernel, h, outer, inner float64) (kernel.Solid, error) {
	body, err := k.Cylinder(h, outer)
	if err != nil {
		return nil, err
	}
	bore, err := k.Cylinder(2*h, inner)
	if err != nil {
		return nil, err
	}
	return k.Difference(body, bore), nil
}
