package ui

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// EventState carries State to the web view.
const EventState = "ui:state"

// EventPublisher emits each state to the front end as a Wails event.
type EventPublisher struct {
	ctx  context.Context
	emit func(ctx context.Context, eventName string, optionalData ...interface{})
}

// NewEventPublisher publishes through the Wails runtime bound to ctx.
func NewEventPublisher(ctx context.Context) *EventPublisher {
	return &EventPublisher{ctx: ctx, emit: runtime.EventsEmit}
}

// Publish implements Publisher.
func (p *EventPublisher) Publish(s State) {
	p.emit(p.ctx, EventState, s)
}
