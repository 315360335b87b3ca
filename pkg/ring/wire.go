package ring

import "fmt"

// Request is the argument of generate_mesh_preview and generate_ring.
// OutputPath is nil when the user has not chosen a folder, which lets the
// backend fall back to its default location.
type Request struct {
	RingType      string  `json:"ring_type"`
	OuterDiameter float64 `json:"outer_diameter"`
	InnerDiameter float64 `json:"inner_diameter"`
	OutputPath    *string `json:"output_path,omitempty"`
}

// MeshData is a preview mesh as flat buffers.
type MeshData struct {
	Vertices      []float64 `json:"vertices"`  // [x0,y0,z0, x1,y1,z1, ...]
	Triangles     []uint32  `json:"triangles"` // [i0,i1,i2, ...]
	VertexCount   int       `json:"vertex_count"`
	TriangleCount int       `json:"triangle_count"`
}

// Validate checks the structural invariants of the buffers: both present,
// both a multiple of three, and every index in range.
func (m *MeshData) Validate() error {
	if m == nil {
		return fmt.Errorf("missing mesh data")
	}
	if m.Vertices == nil || m.Triangles == nil {
		return fmt.Errorf("missing vertices or triangles")
	}
	if len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return fmt.Errorf("empty vertices or triangles arrays")
	}
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("vertices length %d is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("triangles length %d is not a multiple of 3", len(m.Triangles))
	}
	n := uint32(len(m.Vertices) / 3)
	for i, idx := range m.Triangles {
		if idx >= n {
			return fmt.Errorf("triangle index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// GenerationResult reports the outcome of generate_ring. Success=false is a
// domain failure whose Message is shown to the user as-is.
type GenerationResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}
