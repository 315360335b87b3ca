package preview

import v3 "github.com/deadsy/sdfx/vec/v3"

// LightKind distinguishes light types.
type LightKind string

const (
	AmbientLight     LightKind = "ambient"
	DirectionalLight LightKind = "directional"
)

// Light is a scene light. Position is ignored for ambient lights.
type Light struct {
	Kind       LightKind
	Color      Color
	Intensity  float64
	Position   v3.Vec
	CastShadow bool
}

// Material describes how a mesh is shaded.
type Material struct {
	Color      Color
	DoubleSide bool
}

// DefaultMaterial is the ring preview material.
var DefaultMaterial = Material{Color: 0x4a90e2, DoubleSide: true}

// Mesh is a geometry attached to the scene.
type Mesh struct {
	Geometry      *Geometry
	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// Scene is everything drawn in the preview. It holds at most one mesh.
type Scene struct {
	Background Color
	Lights     []Light
	Mesh       *Mesh
}

// NewScene returns a lit, empty scene.
func NewScene(background Color) *Scene {
	return &Scene{
		Background: background,
		Lights: []Light{
			{Kind: AmbientLight, Color: 0x404040, Intensity: 0.6},
			{
				Kind:       DirectionalLight,
				Color:      0xffffff,
				Intensity:  0.8,
				Position:   v3.Vec{X: 50, Y: 50, Z: 25},
				CastShadow: true,
			},
		},
	}
}

// Attach replaces the scene's mesh, detaching any previous one.
func (s *Scene) Attach(m *Mesh) {
	s.Mesh = m
}
