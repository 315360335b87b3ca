package preview

import (
	"context"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Events emitted to the web view.
const (
	EventResize = "preview:resize"
	EventMesh   = "preview:mesh"
	EventFrame  = "preview:frame"
)

// Emitter matches runtime.EventsEmit.
type Emitter func(ctx context.Context, eventName string, optionalData ...interface{})

// MeshPayload carries GPU-ready buffers. Cleared is set when no mesh is attached.
type MeshPayload struct {
	Version    uint64    `json:"version"`
	Cleared    bool      `json:"cleared"`
	Positions  []float32 `json:"positions,omitempty"`
	Normals    []float32 `json:"normals,omitempty"`
	Indices    []uint32  `json:"indices,omitempty"`
	Color      string    `json:"color,omitempty"`
	DoubleSide bool      `json:"doubleSide"`
}

// LightPayload is one scene light.
type LightPayload struct {
	Kind       string     `json:"kind"`
	Color      string     `json:"color"`
	Intensity  float64    `json:"intensity"`
	Position   [3]float64 `json:"position"`
	CastShadow bool       `json:"castShadow"`
}

// FramePayload is the camera and scene state for one redraw.
type FramePayload struct {
	Seq        uint64         `json:"seq"`
	Position   [3]float64     `json:"position"`
	Target     [3]float64     `json:"target"`
	FOV        float64        `json:"fov"`
	Aspect     float64        `json:"aspect"`
	Near       float64        `json:"near"`
	Far        float64        `json:"far"`
	Background string         `json:"background"`
	Lights     []LightPayload `json:"lights"`
	AutoRotate bool           `json:"autoRotate"`
}

// EventSurface draws by pushing Wails events to a three.js view in the
// front end. Mesh buffers are sent once per mesh change; camera frames are
// throttled to at most one per interval.
type EventSurface struct {
	ctx      context.Context
	emit     Emitter
	throttle time.Duration

	mu          sync.Mutex
	lastEmit    time.Time
	meshVersion uint64
	sentMesh    bool
}

// NewEventSurface emits through the Wails runtime bound to ctx.
func NewEventSurface(ctx context.Context, throttle time.Duration) *EventSurface {
	return newEventSurface(ctx, throttle, runtime.EventsEmit)
}

func newEventSurface(ctx context.Context, throttle time.Duration, emit Emitter) *EventSurface {
	return &EventSurface{ctx: ctx, emit: emit, throttle: throttle}
}

// SetSize tells the view to resize its canvas.
func (s *EventSurface) SetSize(width, height int) {
	s.emit(s.ctx, EventResize, map[string]int{"width": width, "height": height})
}

// Draw implements Surface.
func (s *EventSurface) Draw(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meshChanged := !s.sentMesh || f.MeshVersion != s.meshVersion
	if meshChanged {
		s.emit(s.ctx, EventMesh, meshPayload(f))
		s.meshVersion = f.MeshVersion
		s.sentMesh = true
	}

	now := time.Now()
	if !meshChanged && s.lastEmit.Add(s.throttle).After(now) {
		return nil
	}
	s.lastEmit = now
	s.emit(s.ctx, EventFrame, framePayload(f))
	return nil
}

func meshPayload(f Frame) MeshPayload {
	if f.Mesh == nil {
		return MeshPayload{Version: f.MeshVersion, Cleared: true}
	}
	pos, nrm := f.Mesh.Geometry.Flatten()
	return MeshPayload{
		Version:    f.MeshVersion,
		Positions:  pos,
		Normals:    nrm,
		Indices:    f.Mesh.Geometry.Indices,
		Color:      f.Mesh.Material.Color.Hex(),
		DoubleSide: f.Mesh.Material.DoubleSide,
	}
}

func framePayload(f Frame) FramePayload {
	c := f.Camera
	lights := make([]LightPayload, 0, len(f.Lights))
	for _, l := range f.Lights {
		lights = append(lights, LightPayload{
			Kind:       string(l.Kind),
			Color:      l.Color.Hex(),
			Intensity:  l.Intensity,
			Position:   [3]float64{l.Position.X, l.Position.Y, l.Position.Z},
			CastShadow: l.CastShadow,
		})
	}
	return FramePayload{
		Seq:        f.Seq,
		Position:   [3]float64{c.Position.X, c.Position.Y, c.Position.Z},
		Target:     [3]float64{c.Target.X, c.Target.Y, c.Target.Z},
		FOV:        c.FOV,
		Aspect:     c.Aspect,
		Near:       c.Near,
		Far:        c.Far,
		Background: f.Background.Hex(),
		Lights:     lights,
		AutoRotate: f.AutoRotate,
	}
}
