package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventSessionBegin   EventType = "session_begin"
	EventSessionEnd     EventType = "session_end"
	EventConnect        EventType = "connect"
	EventDrop           EventType = "drop"
	EventProjectChanged EventType = "project_changed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NewEventBase stamps an event of type t with the current time.
func NewEventBase(t EventType) EventBase {
	return EventBase{Timestamp: time.Now(), Type: t}
}

// SessionEvent reports the start or end of a pointer gesture.
type SessionEvent struct {
	EventBase
	Kind   string `json:"kind"`
	Button int    `json:"button"`
}

// ConnectEvent reports a wire gesture that produced a connection.
type ConnectEvent struct {
	EventBase
	Output Connection `json:"output"`
	Input  Connection `json:"input"`
}

// DropEvent reports a wire gesture that was discarded.
type DropEvent struct {
	EventBase
	From   Connection `json:"from"`
	To     Connection `json:"to"`
	Reason string     `json:"reason"`
}

// ChangeEvent reports that the project was mutated, replaced or reset.
type ChangeEvent struct {
	EventBase
	Cause string       `json:"cause"`
	Diff  *ProjectDiff `json:"diff,omitempty"`
}

// Hooks defines optional callbacks for editor observability.
type Hooks struct {
	OnSessionBegin   func(*SessionEvent)
	OnSessionEnd     func(*SessionEvent)
	OnConnect        func(*ConnectEvent)
	OnDrop           func(*DropEvent)
	OnProjectChanged func(*ChangeEvent)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnSessionBegin:   chain(h.OnSessionBegin, other.OnSessionBegin),
		OnSessionEnd:     chain(h.OnSessionEnd, other.OnSessionEnd),
		OnConnect:        chain(h.OnConnect, other.OnConnect),
		OnDrop:           chain(h.OnDrop, other.OnDrop),
		OnProjectChanged: chain(h.OnProjectChanged, other.OnProjectChanged),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
