package sinks

import "context"

// Sink delivers snapshot events to a downstream destination.
type Sink interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
