package preview

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ringforge/pkg/ring"
)

// ErrNotInitialized is returned when a mesh is loaded before Initialize.
var ErrNotInitialized = errors.New("preview: renderer not initialized")

// InvalidMeshError reports structurally invalid geometry from the backend.
type InvalidMeshError struct {
	Err error
}

func (e *InvalidMeshError) Error() string {
	return fmt.Sprintf("Invalid mesh data: %v", e.Err)
}

func (e *InvalidMeshError) Unwrap() error {
	return e.Err
}

// Geometry is an indexed triangle surface with per-vertex normals.
type Geometry struct {
	Positions []v3.Vec
	Normals   []v3.Vec
	Indices   []uint32
	Bounds    sdf.Box3
}

// NewGeometry builds a renderable surface from flat buffers. Invalid data is
// rejected with *InvalidMeshError; nothing is substituted for it.
func NewGeometry(m *ring.MeshData) (*Geometry, error) {
	if err := m.Validate(); err != nil {
		return nil, &InvalidMeshError{Err: err}
	}
	for i, f := range m.Vertices {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &InvalidMeshError{Err: fmt.Errorf("non-finite coordinate at position %d", i)}
		}
	}

	n := len(m.Vertices) / 3
	g := &Geometry{
		Positions: make([]v3.Vec, n),
		Indices:   append([]uint32(nil), m.Triangles...),
	}
	for i := 0; i < n; i++ {
		g.Positions[i] = v3.Vec{X: m.Vertices[3*i], Y: m.Vertices[3*i+1], Z: m.Vertices[3*i+2]}
	}
	g.computeBounds()
	g.computeVertexNormals()
	return g, nil
}

// VertexCount is the number of distinct vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// FaceCount is the number of triangles.
func (g *Geometry) FaceCount() int {
	return len(g.Indices) / 3
}

func (g *Geometry) computeBounds() {
	lo := g.Positions[0]
	hi := g.Positions[0]
	for _, p := range g.Positions[1:] {
		lo = v3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = v3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	g.Bounds = sdf.Box3{Min: lo, Max: hi}
}

// computeVertexNormals accumulates area-weighted face normals on each
// vertex and normalizes them, giving smooth shading across shared vertices.
func (g *Geometry) computeVertexNormals() {
	g.Normals = make([]v3.Vec, len(g.Positions))
	for t := 0; t+2 < len(g.Indices); t += 3 {
		ia, ib, ic := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		a, b, c := g.Positions[ia], g.Positions[ib], g.Positions[ic]
		face := b.Sub(a).Cross(c.Sub(a))
		g.Normals[ia] = g.Normals[ia].Add(face)
		g.Normals[ib] = g.Normals[ib].Add(face)
		g.Normals[ic] = g.Normals[ic].Add(face)
	}
	for i, nrm := range g.Normals {
		if l := nrm.Length(); l > 0 {
			g.Normals[i] = nrm.MulScalar(1 / l)
		}
	}
}

// Flatten returns the positions and normals as float32 triples, the layout
// GPU buffers expect.
func (g *Geometry) Flatten() (positions, normals []float32) {
	positions = make([]float32, 0, 3*len(g.Positions))
	normals = make([]float32, 0, 3*len(g.Normals))
	for i, p := range g.Positions {
		nrm := g.Normals[i]
		positions = append(positions, float32(p.X), float32(p.Y), float32(p.Z))
		normals = append(normals, float32(nrm.X), float32(nrm.Y), float32(nrm.Z))
	}
	return positions, normals
}
