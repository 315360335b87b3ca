// Package bridge is the front end's only path to the backend. Every
// operation is a single named request/response round trip. Arguments and
// results cross the boundary as JSON, so command names and field casing
// are the contract. There is no retry and no timeout: failures surface to
// the caller immediately.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Command names understood by the backend.
const (
	CmdGenerateMeshPreview = "generate_mesh_preview"
	CmdGenerateRing        = "generate_ring"
	CmdToggleFullscreen    = "toggle_fullscreen"
	CmdSetWindowMaximized  = "set_window_maximized"
	CmdOpen                = "open"
)

// Invoker performs one round trip to the backend.
type Invoker interface {
	Invoke(ctx context.Context, cmd string, args any) (json.RawMessage, error)
}

// BackendError is any failure of a backend call: transport, rejection by
// the backend, or a result that could not be decoded.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
