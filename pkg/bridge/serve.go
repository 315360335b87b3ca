package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chazu/ringforge/pkg/ring"
)

// Geometry is the backend that produces meshes and files.
type Geometry interface {
	PreviewMesh(req ring.Request) (*ring.MeshData, error)
	GenerateRing(req ring.Request) ring.GenerationResult
}

// Shell is the window manager and native dialog collaborator.
type Shell interface {
	// OpenDirectory shows a folder picker; "" means cancelled.
	OpenDirectory(ctx context.Context, title string) (string, error)
	// ToggleFullscreen flips fullscreen and returns the new state.
	ToggleFullscreen(ctx context.Context) bool
	SetMaximized(ctx context.Context, maximized bool)
}

// Serve registers the backend commands on r.
func Serve(r *Router, geo Geometry, shell Shell) {
	r.Handle(CmdGenerateMeshPreview, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args requestArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return geo.PreviewMesh(args.Request)
	})

	r.Handle(CmdGenerateRing, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args requestArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		return geo.GenerateRing(args.Request), nil
	})

	r.Handle(CmdToggleFullscreen, func(ctx context.Context, _ json.RawMessage) (any, error) {
		return shell.ToggleFullscreen(ctx), nil
	})

	r.Handle(CmdSetWindowMaximized, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args maximizedArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		shell.SetMaximized(ctx, args.Maximized)
		return nil, nil
	})

	r.Handle(CmdOpen, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args DialogOptions
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		if !args.Directory || args.Multiple {
			return nil, errors.New("only single folder selection is supported")
		}
		path, err := shell.OpenDirectory(ctx, args.Title)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return nil, nil
		}
		return path, nil
	})
}

func decodeArgs(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
