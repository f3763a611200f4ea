package interaction

import (
	"log/slog"

	"github.com/aretw0/logicx/internal/logging"
	"github.com/aretw0/logicx/pkg/domain"
)

// Controller turns pointer events into instance drags, wire drops and pans.
type Controller struct {
	project  *domain.Project
	view     View
	session  *Session
	pending  *PendingWire
	viewport Viewport
	hooks    domain.Hooks
	logger   *slog.Logger
}

// Option configures the Controller.
type Option func(*Controller)

// WithView sets the initial view parameters.
func WithView(v View) Option {
	return func(c *Controller) {
		c.view = v
	}
}

// WithViewport injects the viewport-bounds collaborator.
func WithViewport(v Viewport) Option {
	return func(c *Controller) {
		c.viewport = v
	}
}

// WithHooks registers observability hooks.
func WithHooks(h domain.Hooks) Option {
	return func(c *Controller) {
		c.hooks = h
	}
}

// WithLogger configures a logger for absorbed gestures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller driving project.
func NewController(project *domain.Project, opts ...Option) *Controller {
	c := &Controller{
		project: project,
		view:    DefaultView(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.view.GridScale <= 0 {
		c.view.GridScale = DefaultGridScale
	}
	return c
}

// Project returns the project being edited.
func (c *Controller) Project() *domain.Project {
	return c.project
}

// Reset points the controller at a new project and drops any live gesture.
func (c *Controller) Reset(project *domain.Project) {
	c.project = project
	c.session = nil
	c.pending = nil
}

// View returns the current view parameters.
func (c *Controller) View() View {
	return c.view
}

// SetSnap toggles grid snapping for instance drags.
func (c *Controller) SetSnap(on bool) {
	c.view.Snap = on
}

// SetEdit switches between edit and play mode.
func (c *Controller) SetEdit(on bool) {
	c.view.Edit = on
}

// SetScroll sets the pan offset.
func (c *Controller) SetScroll(s domain.Coord) {
	c.view.Scroll = s
}

// SetGridScale changes the pixels-per-unit ratio. Non-positive values are ignored.
func (c *Controller) SetGridScale(scale float64) {
	if scale > 0 {
		c.view.GridScale = scale
	}
}

// Session returns a copy of the live session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Pending returns a copy of the in-progress wire, if any.
func (c *Controller) Pending() (PendingWire, bool) {
	if c.pending == nil {
		return PendingWire{}, false
	}
	return *c.pending, true
}

// Active reports whether a session occupies the slot.
func (c *Controller) Active() bool {
	return c.session != nil
}

// PressInstance starts dragging instance id. It qualifies only for the
// primary button in edit mode while no other session is live.
func (c *Controller) PressInstance(ev PointerEvent, id domain.InstanceID) bool {
	if ev.Button != ButtonPrimary || !c.view.Edit || c.session != nil {
		return false
	}

	s := begin(DragInstance, ev)
	s.Instance = id
	if pl, ok := c.project.Placement(id); ok {
		start := pl.Pos
		s.StartCoord = &start
	} else {
		c.logger.Debug("drag started on unknown instance", "instance", id)
	}

	c.open(s)
	return true
}

// PressTerminal starts a wire gesture from endpoint.
func (c *Controller) PressTerminal(ev PointerEvent, endpoint domain.Connection) bool {
	if ev.Button != ButtonPrimary || !c.view.Edit || c.session != nil {
		return false
	}

	s := begin(DragWire, ev)
	s.Instance = endpoint.Instance
	s.Origin = endpoint

	c.pending = &PendingWire{
		From:     endpoint.Instance,
		Terminal: endpoint.Terminal,
		To:       c.toCanvas(ev.Pos),
	}
	c.open(s)
	return true
}

// PressSurface starts panning the canvas with the middle button.
func (c *Controller) PressSurface(ev PointerEvent) bool {
	if ev.Button != ButtonMiddle || c.session != nil {
		return false
	}
	c.open(begin(Pan, ev))
	return true
}

func (c *Controller) open(s *Session) {
	c.session = s
	if c.hooks.OnSessionBegin != nil {
		c.hooks.OnSessionBegin(&domain.SessionEvent{
			EventBase: domain.NewEventBase(domain.EventSessionBegin),
			Kind:      s.Kind.String(),
			Button:    int(s.Button),
		})
	}
}

// Move feeds a cursor sample to the live session. It reports whether a
// session consumed the event.
func (c *Controller) Move(ev PointerEvent) bool {
	s := c.session
	if s == nil {
		return false
	}
	s.PrevPos = s.CurrentPos
	s.CurrentPos = ev.Pos

	switch s.Kind {
	case DragInstance:
		c.dragInstance(s)
	case DragWire:
		c.dragWire(s)
	case Pan:
		c.view.Scroll = c.view.Scroll.Add(s.DeltaTick())
	}
	return true
}

func (c *Controller) dragInstance(s *Session) {
	if s.StartCoord == nil {
		return
	}
	pos := s.StartCoord.Add(s.Delta().Div(c.view.GridScale))
	if c.view.Snap {
		pos = pos.Quantize(c.view.SnapUnit)
	}
	if !c.project.Move(s.Instance, pos) {
		return
	}
	c.changed("move")
}

func (c *Controller) dragWire(s *Session) {
	if c.pending == nil {
		return
	}
	c.pending.To = c.toCanvas(s.CurrentPos)
}

// toCanvas translates a screen position into canvas-local coordinates.
// Raw coordinates are used until the viewport bounds are known.
func (c *Controller) toCanvas(pos domain.Coord) domain.Coord {
	if c.viewport == nil {
		return pos
	}
	r, ok := c.viewport.Bounds()
	if !ok {
		return pos
	}
	return pos.Sub(r.Origin())
}

// Release ends the live session when the button matches the one that
// started it. A mismatched button leaves the session untouched.
func (c *Controller) Release(ev PointerEvent) bool {
	s := c.session
	if s == nil || s.Button != ev.Button {
		return false
	}
	c.session = nil

	if s.Kind == DragWire {
		c.pending = nil
	}

	if c.hooks.OnSessionEnd != nil {
		c.hooks.OnSessionEnd(&domain.SessionEvent{
			EventBase: domain.NewEventBase(domain.EventSessionEnd),
			Kind:      s.Kind.String(),
			Button:    int(s.Button),
		})
	}
	return true
}

// DropOnTerminal completes a wire gesture on endpoint. The pending wire is
// taken and its origin resolved against endpoint. The live session is not
// ended; call Release (or ReleaseOnTerminal) for that.
func (c *Controller) DropOnTerminal(ev PointerEvent, endpoint domain.Connection) (domain.Wire, bool) {
	if c.session != nil && c.session.Button != ev.Button {
		return domain.Wire{}, false
	}
	pending := c.pending
	if pending == nil {
		return domain.Wire{}, false
	}
	c.pending = nil

	origin := pending.Origin()
	w, ok := c.project.Connect(origin, endpoint)
	if !ok {
		c.logger.Debug("wire dropped", "from", origin.String(), "to", endpoint.String())
		if c.hooks.OnDrop != nil {
			c.hooks.OnDrop(&domain.DropEvent{
				EventBase: domain.NewEventBase(domain.EventDrop),
				From:      origin,
				To:        endpoint,
				Reason:    dropReason(c.project, origin, endpoint),
			})
		}
		return domain.Wire{}, false
	}

	if c.hooks.OnConnect != nil {
		c.hooks.OnConnect(&domain.ConnectEvent{
			EventBase: domain.NewEventBase(domain.EventConnect),
			Output:    domain.Connection{Instance: w.From, Terminal: w.FromTerminal},
			Input:     domain.Connection{Instance: w.To, Terminal: w.ToTerminal},
		})
	}
	c.changed("connect")
	return w, true
}

// ReleaseOnTerminal handles a pointer-up that lands on a terminal: the
// terminal drop runs first, then the generic release.
func (c *Controller) ReleaseOnTerminal(ev PointerEvent, endpoint domain.Connection) (domain.Wire, bool) {
	w, ok := c.DropOnTerminal(ev, endpoint)
	c.Release(ev)
	return w, ok
}

// Wheel scrolls the canvas. With shift held the axes are swapped.
func (c *Controller) Wheel(dx, dy float64, shift bool) {
	if shift {
		dx, dy = dy, dx
	}
	c.view.Scroll = c.view.Scroll.Sub(domain.Pt(dx, dy))
}

func (c *Controller) changed(cause string) {
	if c.hooks.OnProjectChanged != nil {
		c.hooks.OnProjectChanged(&domain.ChangeEvent{
			EventBase: domain.NewEventBase(domain.EventProjectChanged),
			Cause:     cause,
		})
	}
}

func dropReason(p *domain.Project, a, b domain.Connection) string {
	if _, _, ok := domain.Resolve(a, b); !ok {
		return "incompatible terminals"
	}
	for _, end := range []domain.Connection{a, b} {
		if _, ok := p.Placement(end.Instance); !ok {
			return "unknown instance"
		}
	}
	return "terminal out of range"
}
