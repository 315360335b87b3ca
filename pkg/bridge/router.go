package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/chazu/ringforge/pkg/logging"
)

// Handler serves one command. args is the raw JSON argument object.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// ErrUnknownCommand is returned for commands with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// Router is an in-process Invoker. It still encodes every argument and
// result so handlers see exactly what a remote backend would.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// Handle registers h for cmd, replacing any previous handler.
func (r *Router) Handle(cmd string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[cmd] = h
}

// Invoke implements Invoker.
func (r *Router) Invoke(ctx context.Context, cmd string, args any) (json.RawMessage, error) {
	r.mu.RLock()
	h, ok := r.handlers[cmd]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	raw := json.RawMessage("{}")
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encode %s args: %w", cmd, err)
		}
		raw = b
	}

	logging.Debug("invoke", "cmd", cmd)
	out, err := h(ctx, raw)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", cmd, err)
	}
	return b, nil
}
