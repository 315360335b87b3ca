package ring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"CX", Convex},
		{"cx", Convex},
		{"convex", Convex},
		{"CC", Concave},
		{"Concave", Concave},
		{"3P", ThreePoint},
		{"three-point", ThreePoint},
		{"THREEPOINT", ThreePoint},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseType("hex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Valid types are: CX, CC, 3P")
}

func TestNewParams(t *testing.T) {
	p, err := NewParams(Convex, 30, 20)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Height, "height follows wall thickness")
	assert.Equal(t, "CX-20.0.stl", p.Filename())

	p, err = NewParams(ThreePoint, 20, 18)
	require.NoError(t, err)
	assert.Equal(t, MinHeight, p.Height, "thin walls clamp to the minimum height")
	assert.Equal(t, "3P-18.0.stl", p.Filename())

	_, err = NewParams(Concave, 10, 10)
	assert.EqualError(t, err, "Outer diameter must be greater than inner diameter")

	_, err = NewParams(Concave, 10, -2)
	assert.EqualError(t, err, "Diameters must be positive")
}

func TestMeshDataValidate(t *testing.T) {
	valid := &MeshData{
		Vertices:  []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Triangles: []uint32{0, 1, 2},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		mesh *MeshData
	}{
		{"nil", nil},
		{"missing vertices", &MeshData{Triangles: []uint32{0, 1, 2}}},
		{"missing triangles", &MeshData{Vertices: []float64{0, 0, 0}}},
		{"empty vertices", &MeshData{Vertices: []float64{}, Triangles: []uint32{0, 1, 2}}},
		{"misaligned vertices", &MeshData{Vertices: []float64{0, 0, 0, 1}, Triangles: []uint32{0, 0, 0}}},
		{"misaligned triangles", &MeshData{Vertices: []float64{0, 0, 0}, Triangles: []uint32{0, 0}}},
		{"index out of range", &MeshData{Vertices: []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, Triangles: []uint32{0, 1, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.mesh.Validate())
		})
	}
}

func TestRequestWireNames(t *testing.T) {
	dir := "/tmp/rings"
	b, err := json.Marshal(Request{RingType: "CX", OuterDiameter: 20, InnerDiameter: 18, OutputPath: &dir})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ring_type":"CX","outer_diameter":20,"inner_diameter":18,"output_path":"/tmp/rings"}`, string(b))

	b, err = json.Marshal(Request{RingType: "CC", OuterDiameter: 30, InnerDiameter: 25})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "output_path")
}
