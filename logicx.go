package logicx

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/logicx/internal/logging"
	"github.com/aretw0/logicx/internal/presentation/graph"
	"github.com/aretw0/logicx/pkg/adapters/memory"
	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/interaction"
	"github.com/aretw0/logicx/pkg/netlist"
	"github.com/aretw0/logicx/pkg/ports"
	"github.com/aretw0/logicx/pkg/schema"
)

// Editor is the high-level entry point of the library. It owns one
// project and the pointer controller driving it, and serializes every
// operation behind a single lock.
//
// Hooks registered with WithHooks run synchronously with the lock held and
// must not call back into the Editor. Subscribers run after the lock is
// released and may.
type Editor struct {
	mu         sync.Mutex
	project    *domain.Project
	controller *interaction.Controller

	view     interaction.View
	viewport interaction.Viewport
	store    ports.ProjectStore
	hooks    domain.Hooks
	logger   *slog.Logger

	subs    []subscriber
	nextSub int
	queued  []*domain.ChangeEvent
}

type subscriber struct {
	id int
	fn func(*domain.ChangeEvent)
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Editor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithView sets the initial view parameters.
func WithView(v interaction.View) Option {
	return func(e *Editor) {
		e.view = v
	}
}

// WithViewport injects the collaborator reporting the render surface bounds.
func WithViewport(v interaction.Viewport) Option {
	return func(e *Editor) {
		e.viewport = v
	}
}

// WithStore injects a custom ProjectStore for snapshots (default: in-memory).
func WithStore(s ports.ProjectStore) Option {
	return func(e *Editor) {
		e.store = s
	}
}

// WithProject starts the editor on p instead of the default project.
func WithProject(p *domain.Project) Option {
	return func(e *Editor) {
		e.project = p
	}
}

// New initializes an Editor on the default project.
func New(opts ...Option) *Editor {
	e := &Editor{view: interaction.DefaultView()}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.project == nil {
		e.project = domain.DefaultProject()
	}

	// Change notifications are queued and delivered to subscribers once the lock is released.
	e.hooks = e.hooks.Merge(domain.Hooks{
		OnProjectChanged: func(ev *domain.ChangeEvent) {
			e.queued = append(e.queued, ev)
		},
	})

	copts := []interaction.Option{
		interaction.WithView(e.view),
		interaction.WithHooks(e.hooks),
		interaction.WithLogger(e.logger),
	}
	if e.viewport != nil {
		copts = append(copts, interaction.WithViewport(e.viewport))
	}
	e.controller = interaction.NewController(e.project, copts...)

	return e
}

// do runs fn under the lock and then publishes queued change events.
func (e *Editor) do(fn func()) {
	e.mu.Lock()
	fn()
	events := e.queued
	e.queued = nil
	subs := append([]subscriber(nil), e.subs...)
	e.mu.Unlock()

	for _, ev := range events {
		for _, s := range subs {
			s.fn(ev)
		}
	}
}

// replace swaps the current project and drops any live gesture.
// Callers hold the lock.
func (e *Editor) replace(p *domain.Project, cause string) {
	old := e.project
	e.project = p
	e.controller.Reset(p)
	e.changed(cause, domain.Diff(old, p))
}

func (e *Editor) changed(cause string, diff *domain.ProjectDiff) {
	if e.hooks.OnProjectChanged != nil {
		e.hooks.OnProjectChanged(&domain.ChangeEvent{
			EventBase: domain.NewEventBase(domain.EventProjectChanged),
			Cause:     cause,
			Diff:      diff,
		})
	}
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (e *Editor) Subscribe(fn func(*domain.ChangeEvent)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Load decodes and validates a serialized project and makes it current.
// On any error the current project is left untouched.
func (e *Editor) Load(data []byte, format schema.Format) error {
	p, err := schema.Decode(data, format)
	if err != nil {
		e.logger.Warn("load rejected", "format", string(format), "error", err)
		return fmt.Errorf("load project: %w", err)
	}
	e.do(func() {
		e.replace(p, "load")
	})
	return nil
}

// Save serializes the current project.
func (e *Editor) Save(format schema.Format) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return schema.Encode(e.project, format)
}

// Reset replaces the project with the default project.
func (e *Editor) Reset() {
	e.do(func() {
		e.replace(domain.DefaultProject(), "reset")
	})
}

// Project returns a deep copy of the current project.
func (e *Editor) Project() *domain.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Clone()
}

// Edit applies fn to the current project under the lock. The change is
// published with the given cause when fn succeeds. When fn fails, every
// mutation it made is rolled back and nothing is published.
func (e *Editor) Edit(cause string, fn func(p *domain.Project) error) error {
	var err error
	e.do(func() {
		before := e.project.Clone()
		if err = fn(e.project); err != nil {
			// Restored in place: the controller keeps its pointer and live gesture.
			*e.project = *before
			return
		}
		e.changed(cause, domain.Diff(before, e.project))
	})
	return err
}

// ApplyNetlist connects every statement of n. Rejected pairs are
// reported but do not undo the accepted ones.
func (e *Editor) ApplyNetlist(n *netlist.Netlist) (int, error) {
	var (
		applied int
		err     error
	)
	e.do(func() {
		applied, err = netlist.Apply(e.project, n)
		if applied > 0 {
			e.changed("netlist", nil)
		}
	})
	return applied, err
}

// Graph renders the project as a Mermaid flowchart, highlighting any
// gesture in progress.
func (e *Editor) Graph() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	overlay := &graph.GraphOverlay{}
	if s, ok := e.controller.Session(); ok && s.Kind == interaction.DragInstance {
		id := s.Instance
		overlay.Dragged = &id
	}
	if pw, ok := e.controller.Pending(); ok {
		origin := pw.Origin()
		overlay.Pending = &origin
	}
	return graph.GenerateMermaid(e.project, overlay)
}

// --- Snapshots ---

// Snapshot stores a copy of the current project under name.
func (e *Editor) Snapshot(ctx context.Context, name string) error {
	p := e.Project()
	if err := e.store.Save(ctx, name, p); err != nil {
		return fmt.Errorf("snapshot %q: %w", name, err)
	}
	return nil
}

// Restore makes the snapshot stored under name current.
func (e *Editor) Restore(ctx context.Context, name string) error {
	p, err := e.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("restore %q: %w", name, err)
	}
	e.do(func() {
		e.replace(p, "restore")
	})
	return nil
}

// Snapshots lists the stored snapshot names.
func (e *Editor) Snapshots(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// DeleteSnapshot removes a stored snapshot.
func (e *Editor) DeleteSnapshot(ctx context.Context, name string) error {
	return e.store.Delete(ctx, name)
}
