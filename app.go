package main

import (
	"context"
	"sync"

	"github.com/chazu/ringforge/pkg/backend"
	"github.com/chazu/ringforge/pkg/bridge"
	"github.com/chazu/ringforge/pkg/config"
	"github.com/chazu/ringforge/pkg/form"
	"github.com/chazu/ringforge/pkg/kernel/sdfx"
	"github.com/chazu/ringforge/pkg/logging"
	"github.com/chazu/ringforge/pkg/preview"
	"github.com/chazu/ringforge/pkg/ui"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
// Every binding turns a DOM interaction into a ui event; the resulting view
// state comes back to the page as "ui:state" events.
type App struct {
	cfg        config.Config
	configPath string

	mu         sync.Mutex
	renderer   *preview.Renderer
	controller *ui.Controller
	cancel     context.CancelFunc
	running    sync.WaitGroup
}

// NewApp creates an App. configPath is watched for changes once the app
// starts; pass "" to disable reloading.
func NewApp(cfg config.Config, configPath string) *App {
	return &App{cfg: cfg, configPath: configPath}
}

// startup is called by Wails on app startup. The context carries the
// runtime, so the shell, surface and publisher are all bound to it.
func (a *App) startup(ctx context.Context) {
	surface := preview.NewEventSurface(ctx, a.cfg.Preview.EmitInterval())
	a.wire(ctx, bridge.WailsShell{}, surface, ui.NewEventPublisher(ctx))
}

// wire builds the backend, bridge, renderer and controller and starts the
// render loop, the dispatcher and the config watcher.
func (a *App) wire(ctx context.Context, shell bridge.Shell, surface preview.Surface, pub ui.Publisher) {
	ctx, cancel := context.WithCancel(ctx)

	gen := backend.New(
		sdfx.NewWithCells(a.cfg.Preview.MeshCells),
		sdfx.NewWithCells(a.cfg.Export.MeshCells),
		a.cfg.Export.DefaultDir,
	)
	router := bridge.NewRouter()
	bridge.Serve(router, gen, shell)

	opts := preview.Options{FPS: a.cfg.Preview.FPS, FOV: a.cfg.Preview.FOV, Background: preview.DefaultOptions().Background}
	if bg, err := preview.ParseColor(a.cfg.Preview.Background); err == nil {
		opts.Background = bg
	} else {
		logging.Warn("bad preview background, using default", "value", a.cfg.Preview.Background, "err", err)
	}
	renderer := preview.NewRenderer(opts)
	renderer.Initialize(surface, a.cfg.Window.Width, a.cfg.Window.Height)
	renderer.Start(ctx)

	controller := ui.NewController(bridge.NewClient(router), renderer, pub)

	a.mu.Lock()
	a.renderer, a.controller, a.cancel = renderer, controller, cancel
	a.mu.Unlock()

	a.running.Add(1)
	go func() {
		defer a.running.Done()
		if err := controller.Run(ctx); err != nil {
			logging.Error("controller stopped", "err", err)
		}
	}()

	if a.configPath != "" {
		a.running.Add(1)
		go func() {
			defer a.running.Done()
			if err := config.Watch(ctx, a.configPath, a.applyConfig); err != nil {
				logging.Warn("config reload disabled", "path", a.configPath, "err", err)
			}
		}()
	}
	logging.Info("ringforge started", "previewCells", a.cfg.Preview.MeshCells, "exportCells", a.cfg.Export.MeshCells)
}

// applyConfig takes the settings that can change while running.
func (a *App) applyConfig(cfg config.Config) {
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warn("config reload: bad log level", "level", cfg.Log.Level, "err", err)
	}
	a.mu.Lock()
	r := a.renderer
	a.mu.Unlock()
	if r != nil {
		r.SetFPS(cfg.Preview.FPS)
	}
	logging.Info("config reloaded", "fps", cfg.Preview.FPS, "level", cfg.Log.Level)
}

// domReady resets the view state each time the page (re)loads.
func (a *App) domReady(ctx context.Context) {
	a.dispatch(ui.Mounted{})
}

// shutdown stops the render loop and the dispatcher.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	cancel, r := a.cancel, a.renderer
	a.cancel = nil
	a.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	r.Stop()
	a.running.Wait()
}

func (a *App) dispatch(ev ui.Event) {
	a.mu.Lock()
	c := a.controller
	a.mu.Unlock()
	if c == nil {
		logging.Warn("event before startup dropped", "event", ev)
		return
	}
	c.Dispatch(ev)
}

// SetField reports an edit of one form field: "ring-type",
// "outer-diameter" or "inner-diameter".
func (a *App) SetField(field, value string) {
	a.dispatch(ui.FieldChanged{Field: form.Field(field), Value: value})
}

// SubmitPreview is the form submit.
func (a *App) SubmitPreview() {
	a.dispatch(ui.PreviewRequested{})
}

// SaveModel writes the STL for the current form.
func (a *App) SaveModel() {
	a.dispatch(ui.SaveRequested{})
}

// BrowseOutput opens the folder picker.
func (a *App) BrowseOutput() {
	a.dispatch(ui.BrowseRequested{})
}

// KeyDown forwards a global key press.
func (a *App) KeyDown(key string, ctrl bool) {
	a.dispatch(ui.KeyPressed{Key: key, Ctrl: ctrl})
}

// ResizePreview reports the preview container size in CSS pixels.
func (a *App) ResizePreview(width, height int) {
	a.dispatch(ui.Resized{Width: width, Height: height})
}

func (a *App) ToggleAutoRotate() { a.dispatch(ui.ViewAction{Action: ui.ActionToggleRotate}) }
func (a *App) ZoomIn()           { a.dispatch(ui.ViewAction{Action: ui.ActionZoomIn}) }
func (a *App) ZoomOut()          { a.dispatch(ui.ViewAction{Action: ui.ActionZoomOut}) }
func (a *App) ResetView()        { a.dispatch(ui.ViewAction{Action: ui.ActionReset}) }

// Orbit feeds pointer drags into the orbit controls. It bypasses the
// dispatcher since drags carry no view state.
func (a *App) Orbit(dTheta, dPhi float64) {
	a.mu.Lock()
	r := a.renderer
	a.mu.Unlock()
	if r != nil {
		r.Orbit(dTheta, dPhi)
	}
}
