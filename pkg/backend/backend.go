// Package backend answers the geometry side of the ring bridge: it turns a
// ring request into a preview mesh or an STL file using a geometry kernel.
// It plays the part of the remote backend process for the front end; the
// front end only ever reaches it through bridge commands.
package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/ringforge/pkg/kernel"
	"github.com/chazu/ringforge/pkg/logging"
	"github.com/chazu/ringforge/pkg/ring"
)

// Generator builds ring solids. Previews and exports may use kernels with
// different tessellation resolution.
type Generator struct {
	preview    kernel.Kernel
	export     kernel.Kernel
	defaultDir string
}

// New creates a Generator. defaultDir is used when a request has no output
// path; empty means the working directory.
func New(preview, export kernel.Kernel, defaultDir string) *Generator {
	return &Generator{
		preview:    preview,
		export:     export,
		defaultDir: defaultDir,
	}
}

// params parses and checks a request the way both commands need it.
func params(req ring.Request) (ring.Params, error) {
	t, err := ring.ParseType(req.RingType)
	if err != nil {
		return ring.Params{}, err
	}
	p, err := ring.NewParams(t, req.OuterDiameter, req.InnerDiameter)
	if err != nil {
		return ring.Params{}, fmt.Errorf("Invalid parameters: %w", err)
	}
	return p, nil
}

// ErrEmptyMesh means tessellation succeeded but produced no geometry.
var ErrEmptyMesh = errors.New("tessellation produced no geometry")

// PreviewMesh tessellates the requested ring into flat preview buffers.
func (g *Generator) PreviewMesh(req ring.Request) (*ring.MeshData, error) {
	p, err := params(req)
	if err != nil {
		return nil, err
	}
	solid, err := Solid(g.preview, p)
	if err != nil {
		return nil, fmt.Errorf("Failed to generate mesh: %w", err)
	}
	m, err := g.preview.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("Failed to generate mesh: %w", err)
	}
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("Failed to generate mesh: %w", ErrEmptyMesh)
	}

	vertices := make([]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = float64(v)
	}
	data := &ring.MeshData{
		Vertices:      vertices,
		Triangles:     m.Indices,
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
	}
	logging.Debug("preview mesh generated",
		"type", p.Type, "vertices", data.VertexCount, "triangles", data.TriangleCount)
	return data, nil
}

// GenerateRing writes the requested ring as an STL file. Every failure is
// reported in the result rather than as an error.
func (g *Generator) GenerateRing(req ring.Request) ring.GenerationResult {
	p, err := params(req)
	if err != nil {
		return ring.GenerationResult{Message: err.Error()}
	}

	dir := g.defaultDir
	if req.OutputPath != nil && *req.OutputPath != "" {
		dir = *req.OutputPath
	}
	path := filepath.Join(dir, p.Filename())

	if err := g.writeSTL(p, dir, path); err != nil {
		logging.Error("STL generation failed", "path", path, "err", err)
		return ring.GenerationResult{Message: fmt.Sprintf("Failed to generate STL: %v", err)}
	}
	logging.Info("STL saved", "path", path, "type", p.Type,
		"outer", p.OuterDiameter, "inner", p.InnerDiameter, "height", p.Height)

	return ring.GenerationResult{
		Success:  true,
		Message:  fmt.Sprintf("Successfully generated %s ring", p.Type),
		Filename: p.Filename(),
		FilePath: path,
	}
}

func (g *Generator) writeSTL(p ring.Params, dir, path string) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	solid, err := Solid(g.export, p)
	if err != nil {
		return err
	}
	return g.export.WriteSTL(solid, path)
}
