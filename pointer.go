package logicx

import (
	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/interaction"
)

// PressInstance starts dragging instance id. See interaction.Controller.
func (e *Editor) PressInstance(ev interaction.PointerEvent, id domain.InstanceID) bool {
	var ok bool
	e.do(func() {
		ok = e.controller.PressInstance(ev, id)
	})
	return ok
}

// PressTerminal starts a wire gesture from endpoint.
func (e *Editor) PressTerminal(ev interaction.PointerEvent, endpoint domain.Connection) bool {
	var ok bool
	e.do(func() {
		ok = e.controller.PressTerminal(ev, endpoint)
	})
	return ok
}

// PressSurface starts panning with the middle button.
func (e *Editor) PressSurface(ev interaction.PointerEvent) bool {
	var ok bool
	e.do(func() {
		ok = e.controller.PressSurface(ev)
	})
	return ok
}

// Move feeds a cursor sample to the live session.
func (e *Editor) Move(ev interaction.PointerEvent) bool {
	var ok bool
	e.do(func() {
		ok = e.controller.Move(ev)
	})
	return ok
}

// Release ends the live session when the button matches.
func (e *Editor) Release(ev interaction.PointerEvent) bool {
	var ok bool
	e.do(func() {
		ok = e.controller.Release(ev)
	})
	return ok
}

// DropOnTerminal completes a pending wire on endpoint without ending the session.
func (e *Editor) DropOnTerminal(ev interaction.PointerEvent, endpoint domain.Connection) (domain.Wire, bool) {
	var (
		w  domain.Wire
		ok bool
	)
	e.do(func() {
		w, ok = e.controller.DropOnTerminal(ev, endpoint)
	})
	return w, ok
}

// ReleaseOnTerminal handles a pointer-up over endpoint: drop, then release.
func (e *Editor) ReleaseOnTerminal(ev interaction.PointerEvent, endpoint domain.Connection) (domain.Wire, bool) {
	var (
		w  domain.Wire
		ok bool
	)
	e.do(func() {
		w, ok = e.controller.ReleaseOnTerminal(ev, endpoint)
	})
	return w, ok
}

// Wheel scrolls the canvas.
func (e *Editor) Wheel(dx, dy float64, shift bool) {
	e.do(func() {
		e.controller.Wheel(dx, dy, shift)
	})
}

// Session returns a copy of the live session, if any.
func (e *Editor) Session() (interaction.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.Session()
}

// Pending returns a copy of the in-progress wire, if any.
func (e *Editor) Pending() (interaction.PendingWire, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.Pending()
}

// View returns the current view parameters.
func (e *Editor) View() interaction.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.View()
}

// SetSnap toggles grid snapping.
func (e *Editor) SetSnap(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controller.SetSnap(on)
}

// SetEdit switches between edit and play mode.
func (e *Editor) SetEdit(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controller.SetEdit(on)
}

// SetGridScale changes the pixels-per-unit ratio.
func (e *Editor) SetGridScale(scale float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.controller.SetGridScale(scale)
}
