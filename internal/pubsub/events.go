// Package pubsub fans out typed events to subscribers and bridges them into
// the Bubble Tea update loop. The journal watcher publishes file changes here
// and the app listens for them.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	// AppendedEvent reports a new entry written by this process.
	AppendedEvent EventType = "appended"
	// ChangedEvent reports a journal file written or created on disk.
	ChangedEvent EventType = "changed"
	// RemovedEvent reports a journal file removed or renamed away.
	RemovedEvent EventType = "removed"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
