package interaction

import (
	"github.com/aretw0/logicx/pkg/domain"
)

// Button identifies a pointer button, numbered like DOM MouseEvent.button.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// PointerEvent is one externally supplied pointer sample in screen pixels.
type PointerEvent struct {
	Pos    domain.Coord `json:"pos"`
	Button Button       `json:"button"`
	Shift  bool         `json:"shift,omitempty"`
}

// SessionKind selects the update routine of a session.
type SessionKind uint8

const (
	DragInstance SessionKind = iota + 1
	DragWire
	Pan
)

func (k SessionKind) String() string {
	switch k {
	case DragInstance:
		return "drag_instance"
	case DragWire:
		return "drag_wire"
	case Pan:
		return "pan"
	}
	return "none"
}

// MarshalText renders the kind name in JSON payloads.
func (k SessionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Session is the state of one in-progress pointer gesture.
type Session struct {
	Kind SessionKind `json:"kind"`

	StartPos   domain.Coord `json:"start_pos"`
	CurrentPos domain.Coord `json:"current_pos"`
	PrevPos    domain.Coord `json:"prev_pos"`

	Button Button `json:"button"`

	// StartCoord is the position of the dragged instance at press time.
	// Nil when the instance could not be resolved.
	StartCoord *domain.Coord `json:"start_coord,omitempty"`

	Instance domain.InstanceID `json:"instance"`        // DragInstance
	Origin   domain.Connection `json:"origin,omitzero"` // DragWire
}

func begin(kind SessionKind, ev PointerEvent) *Session {
	return &Session{
		Kind:       kind,
		StartPos:   ev.Pos,
		CurrentPos: ev.Pos,
		PrevPos:    ev.Pos,
		Button:     ev.Button,
	}
}

// Delta is the cursor offset since the press.
func (s Session) Delta() domain.Coord {
	return s.CurrentPos.Sub(s.StartPos)
}

// DeltaInv is the offset from the current cursor back to the press.
func (s Session) DeltaInv() domain.Coord {
	return s.StartPos.Sub(s.CurrentPos)
}

// DeltaTick is the cursor offset since the previous move.
func (s Session) DeltaTick() domain.Coord {
	return s.CurrentPos.Sub(s.PrevPos)
}

// DeltaTickInv is the offset from the current cursor back to the previous move.
func (s Session) DeltaTickInv() domain.Coord {
	return s.PrevPos.Sub(s.CurrentPos)
}

// PendingWire is the in-progress wire drawn from a pressed terminal to the
// cursor. To is in canvas-local coordinates.
type PendingWire struct {
	From     domain.InstanceID `json:"from"`
	Terminal domain.Terminal   `json:"terminal"`
	To       domain.Coord      `json:"to"`
}

// Origin returns the endpoint the wire was started from.
func (w PendingWire) Origin() domain.Connection {
	return domain.Connection{Instance: w.From, Terminal: w.Terminal}
}
