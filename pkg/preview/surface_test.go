package preview

import (
	"context"
	"testing"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emitted struct {
	name string
	data []interface{}
}

type recorder struct {
	events []emitted
}

func (r *recorder) emit(ctx context.Context, name string, data ...interface{}) {
	r.events = append(r.events, emitted{name: name, data: data})
}

func (r *recorder) named(name string) []emitted {
	var out []emitted
	for _, e := range r.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

func TestEventSurfaceSendsMeshOncePerVersion(t *testing.T) {
	rec := &recorder{}
	s := newEventSurface(context.Background(), time.Hour, rec.emit)
	r := NewRenderer(DefaultOptions())
	r.Initialize(s, 640, 480)
	require.Len(t, rec.named(EventResize), 1)

	r.Frame()
	meshes := rec.named(EventMesh)
	require.Len(t, meshes, 1)
	assert.True(t, meshes[0].data[0].(MeshPayload).Cleared)

	require.NoError(t, r.LoadMesh(triangle()))
	r.Frame()
	r.Frame()
	meshes = rec.named(EventMesh)
	require.Len(t, meshes, 2)
	p := meshes[1].data[0].(MeshPayload)
	assert.False(t, p.Cleared)
	assert.Len(t, p.Positions, 9)
	assert.Len(t, p.Normals, 9)
	assert.Equal(t, []uint32{0, 1, 2}, p.Indices)
	assert.Equal(t, "#4a90e2", p.Color)
}

func TestClearResendsEmptyMesh(t *testing.T) {
	rec := &recorder{}
	s := newEventSurface(context.Background(), time.Hour, rec.emit)
	r := NewRenderer(DefaultOptions())
	r.Initialize(s, 640, 480)
	require.NoError(t, r.LoadMesh(triangle()))
	r.ToggleAutoRotate()
	r.Frame()

	r.Clear()
	assert.Nil(t, r.Mesh())
	cam, _ := r.Camera()
	assert.Equal(t, DefaultPosition, cam.Position)
	assert.Equal(t, v3.Vec{}, cam.Target)
	assert.True(t, r.ToggleAutoRotate(), "Clear turned auto-rotate off")

	r.Frame()
	meshes := rec.named(EventMesh)
	require.Len(t, meshes, 2)
	before := meshes[0].data[0].(MeshPayload)
	after := meshes[1].data[0].(MeshPayload)
	assert.False(t, before.Cleared)
	assert.True(t, after.Cleared)
	assert.Greater(t, after.Version, before.Version)
}

func TestEventSurfaceThrottlesFrames(t *testing.T) {
	rec := &recorder{}
	s := newEventSurface(context.Background(), time.Hour, rec.emit)
	r := NewRenderer(DefaultOptions())
	r.Initialize(s, 640, 480)

	for i := 0; i < 5; i++ {
		r.Frame()
	}
	frames := rec.named(EventFrame)
	require.Len(t, frames, 1, "only the first frame passes an hour-long throttle")
	fp := frames[0].data[0].(FramePayload)
	assert.Equal(t, "#f0f0f0", fp.Background)
	assert.Equal(t, 75.0, fp.FOV)
	assert.Equal(t, [3]float64{50, 50, 50}, fp.Position)
	require.Len(t, fp.Lights, 2)
	assert.Equal(t, "ambient", fp.Lights[0].Kind)
	assert.Equal(t, "#404040", fp.Lights[0].Color)

	// A mesh change always carries a fresh camera frame.
	require.NoError(t, r.LoadMesh(triangle()))
	r.Frame()
	assert.Len(t, rec.named(EventFrame), 2)
}
