package preview

import (
	"context"
	"sync"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ringforge/pkg/logging"
	"github.com/chazu/ringforge/pkg/ring"
)

// State is the renderer lifecycle state.
type State int

const (
	Uninitialized State = iota
	Initialized
	Rendering
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Rendering:
		return "rendering"
	}
	return "unknown"
}

// Zoom factors for ZoomIn and ZoomOut.
const (
	ZoomInFactor  = 0.9
	ZoomOutFactor = 1.1
)

// MaxFPS caps the render loop rate. Higher values are clamped.
const MaxFPS = 240

// Options configure a Renderer.
type Options struct {
	FPS        int
	FOV        float64
	Background Color
}

// DefaultOptions match the stock preview look.
func DefaultOptions() Options {
	return Options{FPS: 60, FOV: 75, Background: 0xf0f0f0}
}

// Frame is an immutable snapshot handed to a Surface.
type Frame struct {
	Seq         uint64
	Camera      Camera
	Background  Color
	Lights      []Light
	Mesh        *Mesh
	MeshVersion uint64
	AutoRotate  bool
}

// Surface draws frames. Draw is called from the render loop goroutine.
type Surface interface {
	SetSize(width, height int)
	Draw(f Frame) error
}

// Renderer owns the scene graph and the render loop. All methods are safe
// for concurrent use; the loop only reads a snapshot under the lock.
type Renderer struct {
	mu sync.Mutex

	opts     Options
	state    State
	surface  Surface
	scene    *Scene
	camera   *Camera
	controls *OrbitControls

	width, height int
	seq           uint64
	meshVersion   uint64

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRenderer returns an uninitialized renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.FPS <= 0 {
		opts.FPS = DefaultOptions().FPS
	}
	opts.FPS = min(opts.FPS, MaxFPS)
	if opts.FOV <= 0 {
		opts.FOV = DefaultOptions().FOV
	}
	return &Renderer{opts: opts}
}

// Initialize creates a fresh scene, camera, lights and controls on surface,
// replacing whatever was there. A running render loop keeps running and
// draws the new scene.
func (r *Renderer) Initialize(surface Surface, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.surface = surface
	r.width, r.height = width, height
	r.scene = NewScene(r.opts.Background)
	r.camera = NewCamera(r.opts.FOV, width, height)
	r.controls = NewOrbitControls(r.camera)
	r.meshVersion++
	if r.cancel != nil {
		r.state = Rendering
	} else {
		r.state = Initialized
	}
	surface.SetSize(width, height)
	logging.Debug("preview initialized", "width", width, "height", height)
}

// State reports the lifecycle state.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// LoadMesh validates m, builds its geometry, frames the camera on it and
// replaces the current mesh. On error the current mesh stays attached.
func (r *Renderer) LoadMesh(m *ring.MeshData) error {
	g, err := NewGeometry(m)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil {
		return ErrNotInitialized
	}
	r.scene.Attach(&Mesh{
		Geometry:      g,
		Material:      DefaultMaterial,
		CastShadow:    true,
		ReceiveShadow: true,
	})
	r.meshVersion++
	r.fitLocked()
	logging.Debug("preview mesh loaded", "vertices", g.VertexCount(), "faces", g.FaceCount())
	return nil
}

// Clear detaches the mesh and puts the camera back to its starting view.
// Surfaces see a new mesh version, so a reloaded view resynchronizes.
func (r *Renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil {
		return
	}
	r.scene.Attach(nil)
	r.meshVersion++
	r.controls.Stop()
	r.controls.AutoRotate = false
	r.camera.Position = DefaultPosition
	r.camera.Target = v3.Vec{}
	logging.Debug("preview cleared")
}

// Mesh returns the attached mesh, or nil.
func (r *Renderer) Mesh() *Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil {
		return nil
	}
	return r.scene.Mesh
}

// Camera returns a copy of the camera, or false before Initialize.
func (r *Renderer) Camera() (Camera, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.camera == nil {
		return Camera{}, false
	}
	return *r.camera, true
}

func (r *Renderer) fitLocked() {
	if r.scene.Mesh == nil {
		return
	}
	r.controls.Stop()
	r.camera.Fit(r.scene.Mesh.Geometry.Bounds)
}

// Resize updates the camera aspect ratio and the surface size.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.camera == nil {
		return
	}
	r.width, r.height = width, height
	r.camera.SetAspect(width, height)
	r.surface.SetSize(width, height)
}

// ToggleAutoRotate flips auto-rotation and returns the new setting.
func (r *Renderer) ToggleAutoRotate() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.controls == nil {
		return false
	}
	r.controls.AutoRotate = !r.controls.AutoRotate
	return r.controls.AutoRotate
}

// ZoomIn moves the camera closer by ZoomInFactor.
func (r *Renderer) ZoomIn() { r.zoom(ZoomInFactor) }

// ZoomOut moves the camera away by ZoomOutFactor.
func (r *Renderer) ZoomOut() { r.zoom(ZoomOutFactor) }

func (r *Renderer) zoom(k float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.camera == nil {
		return
	}
	r.camera.Scale(k)
}

// ResetView re-frames the current mesh and turns auto-rotation off.
func (r *Renderer) ResetView() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene == nil || r.scene.Mesh == nil {
		return
	}
	r.controls.AutoRotate = false
	r.fitLocked()
}

// Orbit queues a drag rotation, in radians.
func (r *Renderer) Orbit(dTheta, dPhi float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.controls == nil {
		return
	}
	r.controls.Rotate(dTheta, dPhi)
}

// SetFPS changes the loop rate, clamped to MaxFPS; a running loop picks it
// up on its next tick. Non-positive values are ignored.
func (r *Renderer) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.FPS = min(fps, MaxFPS)
}

func (r *Renderer) interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Second / time.Duration(r.opts.FPS)
}

// Frame runs one loop iteration: update controls, then draw. It does
// nothing before Initialize.
func (r *Renderer) Frame() {
	r.mu.Lock()
	if r.scene == nil {
		r.mu.Unlock()
		return
	}
	r.controls.Update()
	r.seq++
	f := Frame{
		Seq:         r.seq,
		Camera:      *r.camera,
		Background:  r.scene.Background,
		Lights:      append([]Light(nil), r.scene.Lights...),
		Mesh:        r.scene.Mesh,
		MeshVersion: r.meshVersion,
		AutoRotate:  r.controls.AutoRotate,
	}
	surface := r.surface
	r.mu.Unlock()

	if err := surface.Draw(f); err != nil {
		logging.Warn("preview draw failed", "seq", f.Seq, "err", err)
	}
}

// Start launches the render loop. It is a no-op when already running.
// The loop ends when ctx is done or Stop is called.
func (r *Renderer) Start(ctx context.Context) {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel, r.done = cancel, done
	if r.state == Initialized {
		r.state = Rendering
	}
	r.mu.Unlock()

	go r.run(ctx, done)
}

func (r *Renderer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer r.finish(done)

	interval := r.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Frame()
			if iv := r.interval(); iv != interval {
				interval = iv
				ticker.Reset(iv)
			}
		}
	}
}

// finish clears loop bookkeeping when the loop ends on its own context.
func (r *Renderer) finish(done chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != done {
		return
	}
	r.cancel()
	r.cancel, r.done = nil, nil
	if r.state == Rendering {
		r.state = Initialized
	}
}

// Stop ends the render loop and waits for it to exit.
func (r *Renderer) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	if r.state == Rendering {
		r.state = Initialized
	}
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
