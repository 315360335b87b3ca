package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chazu/ringforge/pkg/ring"
)

// FolderDialogTitle is shown on the output folder picker.
const FolderDialogTitle = "Select folder to save STL file"

// Client is the typed front-end view of the backend.
type Client struct {
	inv Invoker
}

// NewClient wraps an Invoker.
func NewClient(inv Invoker) *Client {
	return &Client{inv: inv}
}

type requestArgs struct {
	Request ring.Request `json:"request"`
}

// DialogOptions are the folder dialog arguments. They are sent as the
// top-level argument object of the open command.
type DialogOptions struct {
	Directory bool   `json:"directory"`
	Multiple  bool   `json:"multiple"`
	Title     string `json:"title"`
}

type maximizedArgs struct {
	Maximized bool `json:"maximized"`
}

// call invokes cmd and decodes the result into out (when out is non-nil).
func (c *Client) call(ctx context.Context, cmd string, args, out any) error {
	raw, err := c.inv.Invoke(ctx, cmd, args)
	if err != nil {
		return &BackendError{Op: cmd, Err: err}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &BackendError{Op: cmd, Err: fmt.Errorf("malformed result: %w", err)}
	}
	return nil
}

// SelectOutputFolder opens the folder picker. An empty path means the user
// cancelled.
func (c *Client) SelectOutputFolder(ctx context.Context) (string, error) {
	var path *string
	args := DialogOptions{Directory: true, Multiple: false, Title: FolderDialogTitle}
	if err := c.call(ctx, CmdOpen, args, &path); err != nil {
		return "", err
	}
	if path == nil {
		return "", nil
	}
	return *path, nil
}

// PreviewMesh requests preview geometry. Structural checks of the buffers
// belong to the renderer; only undecodable results fail here.
func (c *Client) PreviewMesh(ctx context.Context, req ring.Request) (*ring.MeshData, error) {
	req.OutputPath = nil
	var m *ring.MeshData
	if err := c.call(ctx, CmdGenerateMeshPreview, requestArgs{Request: req}, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &BackendError{Op: CmdGenerateMeshPreview, Err: fmt.Errorf("malformed result: null mesh")}
	}
	return m, nil
}

// GenerateRing asks the backend to persist the ring. A result with
// Success=false is returned as-is, not as an error.
func (c *Client) GenerateRing(ctx context.Context, req ring.Request) (*ring.GenerationResult, error) {
	var res ring.GenerationResult
	if err := c.call(ctx, CmdGenerateRing, requestArgs{Request: req}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ToggleFullscreen flips fullscreen and returns the resulting state.
func (c *Client) ToggleFullscreen(ctx context.Context) (bool, error) {
	var fullscreen bool
	if err := c.call(ctx, CmdToggleFullscreen, nil, &fullscreen); err != nil {
		return false, err
	}
	return fullscreen, nil
}

// SetWindowMaximized maximizes or restores the window.
func (c *Client) SetWindowMaximized(ctx context.Context, maximized bool) error {
	return c.call(ctx, CmdSetWindowMaximized, maximizedArgs{Maximized: maximized}, nil)
}
