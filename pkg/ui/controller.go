package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/chazu/ringforge/pkg/logging"
	"github.com/chazu/ringforge/pkg/ring"
)

// Backend is the bridge to the backend process.
type Backend interface {
	SelectOutputFolder(ctx context.Context) (string, error)
	PreviewMesh(ctx context.Context, req ring.Request) (*ring.MeshData, error)
	GenerateRing(ctx context.Context, req ring.Request) (*ring.GenerationResult, error)
	ToggleFullscreen(ctx context.Context) (bool, error)
	SetWindowMaximized(ctx context.Context, maximized bool) error
}

// Viewer is the preview renderer.
type Viewer interface {
	LoadMesh(m *ring.MeshData) error
	Resize(width, height int)
	ToggleAutoRotate() bool
	ZoomIn()
	ZoomOut()
	ResetView()
	Clear()
}

// Publisher receives the state after every handled event.
type Publisher interface {
	Publish(s State)
}

// eventBuffer bounds queued events before Dispatch blocks.
const eventBuffer = 64

// Controller serializes all state changes on the goroutine running Run.
// Backend calls run on their own goroutines and report back through
// Dispatch; overlapping requests are not de-duplicated, so the last
// response to arrive wins.
type Controller struct {
	backend   Backend
	viewer    Viewer
	publisher Publisher
	log       *log.Logger

	events   chan Event
	quit     chan struct{}
	quitOnce sync.Once
	inflight sync.WaitGroup

	// state is only touched by the Run goroutine.
	state State
}

// NewController wires a controller. Call Run to start processing events.
func NewController(backend Backend, viewer Viewer, publisher Publisher) *Controller {
	return &Controller{
		backend:   backend,
		viewer:    viewer,
		publisher: publisher,
		log:       logging.With("component", "ui"),
		events:    make(chan Event, eventBuffer),
		quit:      make(chan struct{}),
		state:     Initial(),
	}
}

// Dispatch queues an event. After Run has returned it is dropped.
func (c *Controller) Dispatch(ev Event) {
	select {
	case c.events <- ev:
	case <-c.quit:
	}
}

// Run processes events until ctx is done, then waits for in-flight backend
// calls to return.
func (c *Controller) Run(ctx context.Context) error {
	defer c.inflight.Wait()
	defer c.quitOnce.Do(func() { close(c.quit) })

	c.publisher.Publish(c.state)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

func (c *Controller) handle(ctx context.Context, ev Event) {
	queue := []Event{ev}
	for len(queue) > 0 {
		ev, queue = queue[0], queue[1:]
		if pr, ok := ev.(PreviewRequested); ok && pr.ID == "" {
			pr.ID = uuid.NewString()
			ev = pr
		}
		c.log.Debug("event", "type", fmt.Sprintf("%T", ev))

		var cmds []Command
		c.state, cmds = Update(c.state, ev)
		for _, cmd := range cmds {
			if next := c.exec(ctx, cmd); next != nil {
				queue = append(queue, next)
			}
		}
	}
	c.publisher.Publish(c.state)
}

// exec runs a command. Synchronous commands may return a follow-up event
// that is handled before the state is published.
func (c *Controller) exec(ctx context.Context, cmd Command) Event {
	switch cmd := cmd.(type) {
	case RequestPreview:
		c.log.Info("preview requested", "id", cmd.ID, "type", cmd.Request.RingType,
			"outer", cmd.Request.OuterDiameter, "inner", cmd.Request.InnerDiameter)
		c.async(func() Event {
			m, err := c.backend.PreviewMesh(ctx, cmd.Request)
			if err != nil {
				c.log.Error("preview failed", "id", cmd.ID, "err", err)
			}
			return PreviewLoaded{ID: cmd.ID, Mesh: m, Err: err}
		})

	case RenderMesh:
		err := c.viewer.LoadMesh(cmd.Mesh)
		if err != nil {
			c.log.Error("preview mesh rejected", "id", cmd.ID, "err", err)
		}
		return PreviewRendered{ID: cmd.ID, Err: err}

	case RequestGeneration:
		c.log.Info("generation requested", "type", cmd.Request.RingType)
		c.async(func() Event {
			res, err := c.backend.GenerateRing(ctx, cmd.Request)
			if err != nil {
				c.log.Error("generation failed", "err", err)
			}
			return GenerationFinished{Result: res, Err: err}
		})

	case OpenFolderDialog:
		c.async(func() Event {
			path, err := c.backend.SelectOutputFolder(ctx)
			if err != nil {
				c.log.Error("folder dialog failed", "err", err)
			}
			return FolderSelected{Path: path, Err: err}
		})

	case ToggleFullscreen:
		c.async(func() Event {
			on, err := c.backend.ToggleFullscreen(ctx)
			if err != nil {
				c.log.Error("toggle fullscreen failed", "err", err)
			}
			return FullscreenToggled{Fullscreen: on, Exiting: cmd.Exiting, Err: err}
		})

	case MaximizeWindow:
		c.async(func() Event {
			if err := c.backend.SetWindowMaximized(ctx, true); err != nil {
				c.log.Error("maximize failed", "err", err)
			}
			return nil
		})

	case ClearPreview:
		c.viewer.Clear()

	case ResizeView:
		c.viewer.Resize(cmd.Width, cmd.Height)

	case ApplyViewAction:
		switch cmd.Action {
		case ActionToggleRotate:
			c.viewer.ToggleAutoRotate()
		case ActionZoomIn:
			c.viewer.ZoomIn()
		case ActionZoomOut:
			c.viewer.ZoomOut()
		case ActionReset:
			c.viewer.ResetView()
		default:
			c.log.Warn("unknown view action", "action", cmd.Action)
		}
	}
	return nil
}

// async runs fn off the dispatcher goroutine and dispatches its event.
func (c *Controller) async(fn func() Event) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		if ev := fn(); ev != nil {
			c.Dispatch(ev)
		}
	}()
}
