package domain

import (
	"fmt"
	"slices"
)

// Edge is one entry of the connection graph: an output and the inputs it drives.
type Edge struct {
	Output Connection
	Inputs []Connection
}

// Project is the aggregate root of a circuit document.
//
// The connection graph is stored in reversed form, output -> inputs, so
// fan-out lookups are a single map access. Placements keep their
// insertion order for stable iteration.
type Project struct {
	templates   map[ComponentID]*Template
	placements  map[InstanceID]*Placement
	order       []InstanceID
	connections map[Connection][]Connection
	wires       []Wire
	nextID      InstanceID
}

// NewProject creates a project with no templates and no placements.
func NewProject() *Project {
	return &Project{
		templates:   make(map[ComponentID]*Template),
		placements:  make(map[InstanceID]*Placement),
		connections: make(map[Connection][]Connection),
	}
}

// DefaultProject creates the canonical starter project: the not, and, or,
// input and output templates plus one input, one output and one and gate.
func DefaultProject() *Project {
	p := NewProject()

	// The ids and templates are fixed, none of these calls can fail.
	_ = p.AddTemplate(Template{ID: 0, Name: "not", Inputs: []string{"q"}, Outputs: []string{"q!"},
		Driver: TruthTable([2]uint64{0b0, 0b1}, [2]uint64{0b1, 0b0})})
	_ = p.AddTemplate(Template{ID: 1, Name: "and", Inputs: []string{"a", "b"}, Outputs: []string{"and"},
		Driver: TruthTable([2]uint64{0b00, 0b0}, [2]uint64{0b01, 0b0}, [2]uint64{0b10, 0b0}, [2]uint64{0b11, 0b1})})
	_ = p.AddTemplate(Template{ID: 2, Name: "or", Inputs: []string{"a", "b"}, Outputs: []string{"or"},
		Driver: TruthTable([2]uint64{0b00, 0b0}, [2]uint64{0b01, 0b1}, [2]uint64{0b10, 0b1}, [2]uint64{0b11, 0b1})})
	_ = p.AddTemplate(Template{ID: 3, Name: "input", Outputs: []string{"q"}, Driver: InputDriver()})
	_ = p.AddTemplate(Template{ID: 4, Name: "output", Inputs: []string{"q"}, Driver: OutputDriver()})

	_ = p.Insert(Placement{Instance: 0, Template: 3, Label: label("Input"), Pos: Pt(0, 0)})
	_ = p.Insert(Placement{Instance: 1, Template: 4, Label: label("Output"), Pos: Pt(0, 1)})
	_ = p.Insert(Placement{Instance: 2, Template: 1, Label: label("And"), Pos: Pt(2, 0)})

	return p
}

func label(s string) *string { return &s }

// AddTemplate registers or replaces a template. Templates without a name,
// with unnamed terminals or with an incomplete driver are rejected with
// ErrInvalidTemplate.
func (p *Project) AddTemplate(t Template) error {
	if err := t.validate(); err != nil {
		return err
	}
	p.templates[t.ID] = t.clone()
	return nil
}

// Template looks up a template by id.
func (p *Project) Template(id ComponentID) (*Template, bool) {
	t, ok := p.templates[id]
	return t, ok
}

// Templates returns the registry sorted by id.
func (p *Project) Templates() []*Template {
	out := make([]*Template, 0, len(p.templates))
	for _, t := range p.templates {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Template) int { return cmpUint(uint64(a.ID), uint64(b.ID)) })
	return out
}

// Place instantiates a template at pos under the next free instance id.
func (p *Project) Place(template ComponentID, pos Coord) (InstanceID, error) {
	id := p.nextID
	if err := p.Insert(Placement{Instance: id, Template: template, Pos: pos}); err != nil {
		return 0, err
	}
	return id, nil
}

// Insert adds a placement with an explicit instance id.
func (p *Project) Insert(pl Placement) error {
	if _, ok := p.templates[pl.Template]; !ok {
		return fmt.Errorf("%w: template %d for instance %d", ErrDanglingReference, pl.Template, pl.Instance)
	}
	if _, ok := p.placements[pl.Instance]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateInstance, pl.Instance)
	}
	if !pl.Pos.IsFinite() || !isFinite(pl.Orientation) {
		return fmt.Errorf("%w: placement of instance %d", ErrNonFinite, pl.Instance)
	}
	p.placements[pl.Instance] = pl.clone()
	p.order = append(p.order, pl.Instance)
	if pl.Instance >= p.nextID {
		p.nextID = pl.Instance + 1
	}
	return nil
}

// Placement looks up an instance.
func (p *Project) Placement(id InstanceID) (*Placement, bool) {
	pl, ok := p.placements[id]
	return pl, ok
}

// Placements returns every instance in insertion order.
func (p *Project) Placements() []*Placement {
	out := make([]*Placement, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.placements[id])
	}
	return out
}

// TemplateOf resolves the template of an instance.
func (p *Project) TemplateOf(id InstanceID) (*Template, bool) {
	pl, ok := p.placements[id]
	if !ok {
		return nil, false
	}
	t, ok := p.templates[pl.Template]
	return t, ok
}

// Move sets the position of an instance. It reports false for unknown ids
// and non-finite positions.
func (p *Project) Move(id InstanceID, pos Coord) bool {
	pl, ok := p.placements[id]
	if !ok || !pos.IsFinite() {
		return false
	}
	pl.Pos = pos
	return true
}

// SetLabel replaces the display label of an instance; nil clears it.
func (p *Project) SetLabel(id InstanceID, text *string) error {
	pl, ok := p.placements[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInstanceNotFound, id)
	}
	if text == nil {
		pl.Label = nil
		return nil
	}
	pl.Label = label(*text)
	return nil
}

// SetOrientation sets the rotation angle of an instance.
func (p *Project) SetOrientation(id InstanceID, angle float64) error {
	pl, ok := p.placements[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInstanceNotFound, id)
	}
	if !isFinite(angle) {
		return fmt.Errorf("%w: orientation of instance %d", ErrNonFinite, id)
	}
	pl.Orientation = angle
	return nil
}

// Wires returns a copy of the wire list.
func (p *Project) Wires() []Wire {
	out := make([]Wire, len(p.wires))
	for i, w := range p.wires {
		w.Points = append([]Coord(nil), w.Points...)
		out[i] = w
	}
	return out
}

// Len returns the number of placements.
func (p *Project) Len() int {
	return len(p.placements)
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	out := NewProject()
	for id, t := range p.templates {
		out.templates[id] = t.clone()
	}
	for id, pl := range p.placements {
		out.placements[id] = pl.clone()
	}
	out.order = append([]InstanceID(nil), p.order...)
	for k, v := range p.connections {
		out.connections[k] = append([]Connection(nil), v...)
	}
	out.wires = p.Wires()
	out.nextID = p.nextID
	return out
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
