package sdfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/ringforge/pkg/kernel"
)

// testCells keeps marching cubes cheap in tests.
const testCells = 40

func mustCylinder(t *testing.T, k *SdfxKernel, h, r float64) kernel.Solid {
	t.Helper()
	s, err := k.Cylinder(h, r)
	if err != nil {
		t.Fatalf("Cylinder(%v, %v): %v", h, r, err)
	}
	return s
}

func TestCylinder(t *testing.T) {
	k := NewWithCells(testCells)
	mesh, err := k.ToMesh(mustCylinder(t, k, 5, 10))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Indices) != mesh.VertexCount() {
		t.Fatalf("indices length %d != vertex count %d", len(mesh.Indices), mesh.VertexCount())
	}
	for i, idx := range mesh.Indices {
		if int(idx) != i {
			t.Fatalf("indices[%d] = %d, want %d (triangle soup)", i, idx, i)
		}
	}
}

func TestCylinderInvalid(t *testing.T) {
	k := NewWithCells(testCells)
	if _, err := k.Cylinder(5, -1); err == nil {
		t.Fatal("expected error for negative radius")
	}
}

func TestBoxBoundingBox(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Box(100, 50, 25)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestDifferenceMakesRing(t *testing.T) {
	k := NewWithCells(testCells)
	outer := mustCylinder(t, k, 4, 10)
	inner := mustCylinder(t, k, 8, 8)

	outerMesh, err := k.ToMesh(outer)
	if err != nil {
		t.Fatalf("ToMesh(outer) failed: %v", err)
	}
	ringMesh, err := k.ToMesh(k.Difference(outer, inner))
	if err != nil {
		t.Fatalf("ToMesh(ring) failed: %v", err)
	}
	// A ring has an inner wall the plain disc lacks.
	if ringMesh.TriangleCount() <= outerMesh.TriangleCount() {
		t.Fatalf("ring (%d triangles) should have more triangles than disc (%d triangles)",
			ringMesh.TriangleCount(), outerMesh.TriangleCount())
	}
}

func TestTranslate(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Box(10, 10, 10)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	min, max := k.Translate(box, 100, 200, 300).BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotateZ(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Box(100, 10, 10)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	min, max := k.RotateZ(box, 90).BoundingBox()
	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestWriteSTL(t *testing.T) {
	k := NewWithCells(testCells)
	ring := k.Difference(mustCylinder(t, k, 4, 10), mustCylinder(t, k, 8, 8))

	path := filepath.Join(t.TempDir(), "ring.stl")
	if err := k.WriteSTL(ring, path); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header + 4-byte count + 50 bytes per triangle.
	if info.Size() <= 84 || (info.Size()-84)%50 != 0 {
		t.Errorf("unexpected STL size %d", info.Size())
	}
}

func TestNewWithCellsFallback(t *testing.T) {
	if got := NewWithCells(0).Cells(); got != DefaultMeshCells {
		t.Errorf("Cells() = %d, want %d", got, DefaultMeshCells)
	}
}
