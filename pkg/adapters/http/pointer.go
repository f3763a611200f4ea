package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/interaction"
	"github.com/aretw0/logicx/pkg/schema"
)

var validate = validator.New()

// PointerRequest is one pointer event posted by a client.
type PointerRequest struct {
	Type   string  `json:"type" validate:"required,oneof=press_instance press_terminal press_surface move release drop_terminal release_terminal wheel"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button" validate:"min=0,max=2"`
	Shift  bool    `json:"shift,omitempty"`

	// Instance is the target of press_instance.
	Instance *uint64 `json:"instance,omitempty"`
	// Terminal is the endpoint token of press_terminal, drop_terminal and release_terminal.
	Terminal string `json:"terminal,omitempty"`

	// DX and DY are the wheel deltas.
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
}

// SessionState is the live gesture state of the editor.
type SessionState struct {
	Session *interaction.Session     `json:"session,omitempty"`
	Pending *interaction.PendingWire `json:"pending,omitempty"`
	View    interaction.View         `json:"view"`
}

// PointerResponse reports whether the event was consumed and the
// resulting gesture state.
type PointerResponse struct {
	Accepted bool            `json:"accepted"`
	Wire     *schema.WireDoc `json:"wire,omitempty"`
	SessionState
}

// Pointer handles the POST /pointer request.
func (s *Server) Pointer(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Pointer: Invalid request body", "error", err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid pointer event: %v", err), http.StatusBadRequest)
		return
	}

	ev := interaction.PointerEvent{
		Pos:    domain.Pt(req.X, req.Y),
		Button: interaction.Button(req.Button),
		Shift:  req.Shift,
	}

	var endpoint domain.Connection
	switch req.Type {
	case "press_terminal", "drop_terminal", "release_terminal":
		c, err := domain.ParseConnection(req.Terminal)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid terminal: %v", err), http.StatusBadRequest)
			return
		}
		endpoint = c
	case "press_instance":
		if req.Instance == nil {
			http.Error(w, "Invalid pointer event: instance is required", http.StatusBadRequest)
			return
		}
	}

	resp := PointerResponse{}
	var (
		wire domain.Wire
		ok   bool
	)
	switch req.Type {
	case "press_instance":
		resp.Accepted = s.Editor.PressInstance(ev, domain.InstanceID(*req.Instance))
	case "press_terminal":
		resp.Accepted = s.Editor.PressTerminal(ev, endpoint)
	case "press_surface":
		resp.Accepted = s.Editor.PressSurface(ev)
	case "move":
		resp.Accepted = s.Editor.Move(ev)
	case "release":
		resp.Accepted = s.Editor.Release(ev)
	case "drop_terminal":
		wire, ok = s.Editor.DropOnTerminal(ev, endpoint)
		resp.Accepted = ok
	case "release_terminal":
		wire, ok = s.Editor.ReleaseOnTerminal(ev, endpoint)
		resp.Accepted = ok
	case "wheel":
		s.Editor.Wheel(req.DX, req.DY, req.Shift)
		resp.Accepted = true
	}

	if ok {
		resp.Wire = &schema.WireDoc{
			From:   domain.Connection{Instance: wire.From, Terminal: wire.FromTerminal}.String(),
			To:     domain.Connection{Instance: wire.To, Terminal: wire.ToTerminal}.String(),
			Points: wire.Points,
		}
	}
	resp.SessionState = s.state()

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) state() SessionState {
	st := SessionState{View: s.Editor.View()}
	if sess, ok := s.Editor.Session(); ok {
		st.Session = ptr(sess)
	}
	if pw, ok := s.Editor.Pending(); ok {
		st.Pending = ptr(pw)
	}
	return st
}
