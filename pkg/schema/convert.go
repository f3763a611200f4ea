package schema

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/logicx/pkg/domain"
)

// Decode parses, validates and converts a serialized project.
func Decode(data []byte, format Format) (*domain.Project, error) {
	doc, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return ToProject(doc)
}

// Encode serializes p in the given format.
func Encode(p *domain.Project, format Format) ([]byte, error) {
	return Marshal(FromProject(p), format)
}

// ToProject builds a project from a document. Documents that passed
// Validate convert without error; otherwise the first graph-boundary
// failure is returned.
func ToProject(doc *Document) (*domain.Project, error) {
	p := domain.NewProject()

	for _, t := range doc.Templates {
		err := p.AddTemplate(domain.Template{
			ID:      domain.ComponentID(t.ID),
			Name:    t.Name,
			Inputs:  t.Inputs,
			Outputs: t.Outputs,
			Driver:  toDriver(t.Driver),
		})
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", t.ID, err)
		}
	}

	for _, pl := range doc.Placements {
		err := p.Insert(domain.Placement{
			Instance:    domain.InstanceID(pl.Instance),
			Template:    domain.ComponentID(pl.Template),
			Label:       pl.Label,
			Pos:         pl.Pos,
			Orientation: pl.Orientation,
		})
		if err != nil {
			return nil, fmt.Errorf("placement %d: %w", pl.Instance, err)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(doc.Connections)) {
		out, err := domain.ParseConnection(key)
		if err != nil {
			return nil, err
		}
		for _, token := range doc.Connections[key] {
			in, err := domain.ParseConnection(token)
			if err != nil {
				return nil, err
			}
			if err := p.AddConnection(out, in); err != nil {
				return nil, fmt.Errorf("connection %s -> %s: %w", key, token, err)
			}
		}
	}

	for i, w := range doc.Wires {
		from, err := domain.ParseConnection(w.From)
		if err != nil {
			return nil, err
		}
		to, err := domain.ParseConnection(w.To)
		if err != nil {
			return nil, err
		}
		err = p.AddWire(domain.Wire{
			From:         from.Instance,
			FromTerminal: from.Terminal,
			Points:       w.Points,
			To:           to.Instance,
			ToTerminal:   to.Terminal,
		})
		if err != nil {
			return nil, fmt.Errorf("wire %d: %w", i, err)
		}
	}

	return p, nil
}

// FromProject captures p as a document. Templates are sorted by id,
// placements keep their insertion order.
func FromProject(p *domain.Project) *Document {
	doc := &Document{
		Templates:  make([]TemplateDoc, 0, len(p.Templates())),
		Placements: make([]PlacementDoc, 0, p.Len()),
	}

	for _, t := range p.Templates() {
		doc.Templates = append(doc.Templates, TemplateDoc{
			ID:      uint64(t.ID),
			Name:    t.Name,
			Inputs:  slices.Clone(t.Inputs),
			Outputs: slices.Clone(t.Outputs),
			Driver:  fromDriver(t.Driver),
		})
	}

	for _, pl := range p.Placements() {
		var label *string
		if pl.Label != nil {
			s := *pl.Label
			label = &s
		}
		doc.Placements = append(doc.Placements, PlacementDoc{
			Instance:    uint64(pl.Instance),
			Template:    uint64(pl.Template),
			Label:       label,
			Pos:         pl.Pos,
			Orientation: pl.Orientation,
		})
	}

	if edges := p.Connections(); len(edges) > 0 {
		doc.Connections = make(map[string][]string, len(edges))
		for _, e := range edges {
			inputs := make([]string, 0, len(e.Inputs))
			for _, in := range e.Inputs {
				inputs = append(inputs, in.String())
			}
			doc.Connections[e.Output.String()] = inputs
		}
	}

	for _, w := range p.Wires() {
		doc.Wires = append(doc.Wires, WireDoc{
			From:   domain.Connection{Instance: w.From, Terminal: w.FromTerminal}.String(),
			To:     domain.Connection{Instance: w.To, Terminal: w.ToTerminal}.String(),
			Points: slices.Clone(w.Points),
		})
	}

	return doc
}

func toDriver(d DriverDoc) domain.Driver {
	out := domain.Driver{Kind: domain.DriverKind(d.Kind), Script: d.Script}
	if d.Truth != nil {
		out.Truth = maps.Clone(d.Truth)
	}
	if len(d.Wiring) > 0 {
		out.Wiring = make(map[domain.PortRef]domain.PortRef, len(d.Wiring))
		for _, w := range d.Wiring {
			out.Wiring[toPort(w.From)] = toPort(w.To)
		}
	}
	return out
}

func fromDriver(d domain.Driver) DriverDoc {
	out := DriverDoc{Kind: string(d.Kind), Script: d.Script}
	// An empty table is written as absent and read back as nil.
	if len(d.Truth) > 0 {
		out.Truth = maps.Clone(d.Truth)
	}
	for from, to := range d.Wiring {
		out.Wiring = append(out.Wiring, WiringDoc{From: fromPort(from), To: fromPort(to)})
	}
	slices.SortFunc(out.Wiring, func(a, b WiringDoc) int {
		return cmp.Or(
			cmp.Compare(a.From.Component, b.From.Component),
			cmp.Compare(a.From.Terminal, b.From.Terminal),
		)
	})
	return out
}

func toPort(p PortDoc) domain.PortRef {
	return domain.PortRef{Component: domain.ComponentID(p.Component), Terminal: p.Terminal}
}

func fromPort(p domain.PortRef) PortDoc {
	return PortDoc{Component: uint64(p.Component), Terminal: p.Terminal}
}
