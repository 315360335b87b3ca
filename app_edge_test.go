package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chazu/ringforge/pkg/config"
	"github.com/chazu/ringforge/pkg/preview"
	"github.com/chazu/ringforge/pkg/ui"
)

// ---------------------------------------------------------------------------
// 1. Validation failures never reach the backend: the error panel shows the
//    validator message and no preview is started.
// ---------------------------------------------------------------------------

func TestE2EThinWallRejected(t *testing.T) {
	app, surface, pub := startApp(t, testConfig(t), &testShell{})

	fillForm(app, "CX", "20", "19")
	app.SubmitPreview()

	waitFor(t, "error panel", func() bool { return pub.get().Result.Panel == ui.PanelError })
	s := pub.get()
	if !strings.Contains(s.Result.Message, "Wall thickness (0.50mm) is too thin") {
		t.Errorf("message = %q", s.Result.Message)
	}
	if s.Preview.Visible {
		t.Error("preview panel shown for an invalid form")
	}
	if !s.Form.InnerInvalid {
		t.Error("inner field not marked invalid")
	}
	if surface.lastFrame().Mesh != nil {
		t.Error("a mesh was rendered for an invalid form")
	}
}

func TestE2EMissingRingType(t *testing.T) {
	app, _, pub := startApp(t, testConfig(t), &testShell{})

	app.SetField("outer-diameter", "20")
	app.SetField("inner-diameter", "10")
	app.SaveModel()

	waitFor(t, "error panel", func() bool { return pub.get().Result.Panel == ui.PanelError })
	if got := pub.get().Result.Message; got != "Please select a ring type" {
		t.Errorf("message = %q", got)
	}
}

// ---------------------------------------------------------------------------
// 2. Domain failures from the backend are shown verbatim.
// ---------------------------------------------------------------------------

func TestE2ESaveIntoFileFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	app, _, pub := startApp(t, testConfig(t), &testShell{folder: blocker})

	fillForm(app, "3P", "30", "20")
	app.BrowseOutput()
	waitFor(t, "folder selection", func() bool { return pub.get().OutputPath == blocker })
	app.SaveModel()

	waitFor(t, "error panel", func() bool { return pub.get().Result.Panel == ui.PanelError })
	if got := pub.get().Result.Message; !strings.HasPrefix(got, "Failed to generate STL: ") {
		t.Errorf("message = %q", got)
	}
}

func TestE2EBrowseFailure(t *testing.T) {
	app, _, pub := startApp(t, testConfig(t), &testShell{folderErr: errors.New("no display")})

	app.BrowseOutput()

	waitFor(t, "error panel", func() bool { return pub.get().Result.Panel == ui.PanelError })
	if got := pub.get().Result.Message; !strings.HasPrefix(got, "Failed to open file dialog: ") {
		t.Errorf("message = %q", got)
	}
	if pub.get().OutputPath != "" {
		t.Error("output path changed after a failed dialog")
	}
}

func TestE2EBrowseCancelled(t *testing.T) {
	app, _, pub := startApp(t, testConfig(t), &testShell{})

	app.BrowseOutput()
	time.Sleep(50 * time.Millisecond)
	if s := pub.get(); s.OutputPath != "" || s.Result.Panel != ui.PanelNone {
		t.Errorf("cancelled dialog changed state: %+v", s)
	}
}

// ---------------------------------------------------------------------------
// 3. Window shortcuts.
// ---------------------------------------------------------------------------

func TestE2EF11Toggles(t *testing.T) {
	shell := &testShell{}
	app, _, _ := startApp(t, testConfig(t), shell)

	app.KeyDown("F11", false)
	waitFor(t, "toggle", func() bool { return shell.toggleCount() == 1 })
}

func TestE2EEscapeRetriesWhenStillFullscreen(t *testing.T) {
	shell := &testShell{fullscreen: true, stuck: true}
	app, _, _ := startApp(t, testConfig(t), shell)

	app.KeyDown("Escape", false)
	waitFor(t, "corrective toggle", func() bool { return shell.toggleCount() == 2 })

	time.Sleep(50 * time.Millisecond)
	if n := shell.toggleCount(); n != 2 {
		t.Errorf("toggles = %d, want exactly 2", n)
	}
}

func TestE2ECtrlMMaximizes(t *testing.T) {
	shell := &testShell{}
	app, _, _ := startApp(t, testConfig(t), shell)

	app.KeyDown("M", true)
	waitFor(t, "maximize", func() bool {
		shell.mu.Lock()
		defer shell.mu.Unlock()
		return shell.maximized
	})
}

// ---------------------------------------------------------------------------
// 4. Viewport controls and lifecycle.
// ---------------------------------------------------------------------------

func TestE2EViewportControls(t *testing.T) {
	app, surface, pub := startApp(t, testConfig(t), &testShell{})

	fillForm(app, "CX", "20", "16")
	app.SubmitPreview()
	waitFor(t, "preview to render", func() bool { return pub.get().Preview.ActionVisible })

	app.ResizePreview(640, 480)
	waitFor(t, "resize", func() bool {
		surface.mu.Lock()
		defer surface.mu.Unlock()
		return surface.width == 640 && surface.height == 480
	})

	before, _ := app.renderer.Camera()
	app.ZoomIn()
	waitFor(t, "zoom in", func() bool {
		c, _ := app.renderer.Camera()
		return c.Position.Sub(c.Target).Length() < before.Position.Sub(before.Target).Length()
	})

	app.ToggleAutoRotate()
	waitFor(t, "auto-rotate", func() bool { return surface.lastFrame().AutoRotate })

	app.ResetView()
	waitFor(t, "reset", func() bool { return !surface.lastFrame().AutoRotate })
}

func TestE2EReloadClearsPreview(t *testing.T) {
	app, surface, pub := startApp(t, testConfig(t), &testShell{})

	fillForm(app, "CC", "20", "16")
	app.SubmitPreview()
	waitFor(t, "preview to render", func() bool { return pub.get().Preview.ActionVisible })
	waitFor(t, "a frame with the mesh", func() bool { return surface.lastFrame().Mesh != nil })
	version := surface.lastFrame().MeshVersion

	app.domReady(context.Background())

	waitFor(t, "state reset", func() bool { return !pub.get().Preview.Visible })
	waitFor(t, "an empty frame", func() bool {
		f := surface.lastFrame()
		return f.Mesh == nil && f.MeshVersion > version
	})
	if app.renderer.Mesh() != nil {
		t.Error("renderer kept its mesh after the view reloaded")
	}
}

func TestBindingsBeforeStartup(t *testing.T) {
	app := NewApp(testConfig(t), "")

	// None of these may panic before Wails calls startup.
	app.SetField("ring-type", "CX")
	app.SubmitPreview()
	app.KeyDown("F11", false)
	app.Orbit(0.1, 0.1)
	app.shutdown(context.Background())
}

func TestShutdownStopsRenderLoop(t *testing.T) {
	app := NewApp(testConfig(t), "")
	app.wire(context.Background(), &testShell{}, &testSurface{}, &testPublisher{})
	if got := app.renderer.State(); got != preview.Rendering {
		t.Fatalf("state = %v, want rendering", got)
	}
	app.shutdown(context.Background())
	if got := app.renderer.State(); got != preview.Initialized {
		t.Errorf("state after shutdown = %v, want initialized", got)
	}
}

// ---------------------------------------------------------------------------
// 5. Config reload applies the log level without a restart.
// ---------------------------------------------------------------------------

func TestE2EConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := testConfig(t)
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	app := NewApp(cfg, path)
	app.wire(context.Background(), &testShell{}, &testSurface{}, &testPublisher{})
	t.Cleanup(func() { app.shutdown(context.Background()) })

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	cfg.Preview.FPS = 24
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	// The reload itself is covered in pkg/config; here it must not disturb
	// a running app.
	time.Sleep(100 * time.Millisecond)
	if got := app.renderer.State(); got != preview.Rendering {
		t.Errorf("state after reload = %v", got)
	}
}
