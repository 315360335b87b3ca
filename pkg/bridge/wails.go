package bridge

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Compile-time interface check.
var _ Shell = WailsShell{}

// WailsShell drives the native window and dialogs through the Wails runtime.
// The ctx passed to each method must be the context Wails hands to OnStartup.
type WailsShell struct{}

func (WailsShell) OpenDirectory(ctx context.Context, title string) (string, error) {
	return runtime.OpenDirectoryDialog(ctx, runtime.OpenDialogOptions{Title: title})
}

func (WailsShell) ToggleFullscreen(ctx context.Context) bool {
	if runtime.WindowIsFullscreen(ctx) {
		runtime.WindowUnfullscreen(ctx)
		return false
	}
	runtime.WindowFullscreen(ctx)
	return true
}

func (WailsShell) SetMaximized(ctx context.Context, maximized bool) {
	if maximized {
		runtime.WindowMaximise(ctx)
		return
	}
	runtime.WindowUnmaximise(ctx)
}
