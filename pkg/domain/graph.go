package domain

import (
	"fmt"
	"slices"
)

// checkEndpoint validates that c points at an existing instance and at a
// terminal within its template's bounds.
func (p *Project) checkEndpoint(c Connection) error {
	pl, ok := p.placements[c.Instance]
	if !ok {
		return fmt.Errorf("%w: instance %d", ErrDanglingReference, c.Instance)
	}
	t, ok := p.templates[pl.Template]
	if !ok {
		return fmt.Errorf("%w: template %d of instance %d", ErrDanglingReference, pl.Template, c.Instance)
	}
	if !t.HasTerminal(c.Terminal) {
		return fmt.Errorf("%w: terminal %s not on template %q", ErrDanglingReference, c, t.Name)
	}
	return nil
}

func (p *Project) checkEdge(output, input Connection) error {
	if !output.Terminal.IsOutput() || !input.Terminal.IsInput() {
		return fmt.Errorf("%w: %s -> %s", ErrTerminalMismatch, output, input)
	}
	if err := p.checkEndpoint(output); err != nil {
		return err
	}
	return p.checkEndpoint(input)
}

// AddConnection appends input to the list driven by output, creating the
// key if needed. Entries are not deduplicated. No wire is emitted.
func (p *Project) AddConnection(output, input Connection) error {
	if err := p.checkEdge(output, input); err != nil {
		return err
	}
	p.connections[output] = append(p.connections[output], input)
	return nil
}

// AddWire appends a visual wire after validating it like a connection:
// it must run from an output to an input of existing instances.
func (p *Project) AddWire(w Wire) error {
	from := Connection{Instance: w.From, Terminal: w.FromTerminal}
	to := Connection{Instance: w.To, Terminal: w.ToTerminal}
	if err := p.checkEdge(from, to); err != nil {
		return err
	}
	for _, pt := range w.Points {
		if !pt.IsFinite() {
			return fmt.Errorf("%w: route point of wire %s -> %s", ErrNonFinite, from, to)
		}
	}
	w.Points = append([]Coord(nil), w.Points...)
	p.wires = append(p.wires, w)
	return nil
}

// Delete removes an instance together with every connection entry and
// wire that references it.
func (p *Project) Delete(id InstanceID) error {
	if _, ok := p.placements[id]; !ok {
		return fmt.Errorf("%w: %d", ErrInstanceNotFound, id)
	}
	delete(p.placements, id)
	p.order = slices.DeleteFunc(p.order, func(v InstanceID) bool { return v == id })

	for output, inputs := range p.connections {
		if output.Instance == id {
			delete(p.connections, output)
			continue
		}
		kept := slices.DeleteFunc(inputs, func(c Connection) bool { return c.Instance == id })
		if len(kept) == 0 {
			delete(p.connections, output)
		} else {
			p.connections[output] = kept
		}
	}

	p.wires = slices.DeleteFunc(p.wires, func(w Wire) bool { return w.References(id) })
	return nil
}

// Connections returns a snapshot of the graph sorted by output endpoint.
func (p *Project) Connections() []Edge {
	out := make([]Edge, 0, len(p.connections))
	for output, inputs := range p.connections {
		out = append(out, Edge{Output: output, Inputs: append([]Connection(nil), inputs...)})
	}
	slices.SortFunc(out, func(a, b Edge) int { return compareConnection(a.Output, b.Output) })
	return out
}

// ConnectionCount returns the number of (output, input) entries.
func (p *Project) ConnectionCount() int {
	n := 0
	for _, inputs := range p.connections {
		n += len(inputs)
	}
	return n
}

// Targets returns the inputs driven by output, in insertion order.
func (p *Project) Targets(output Connection) []Connection {
	return append([]Connection(nil), p.connections[output]...)
}

// Drivers returns every output that drives input. Fan-in is not
// restricted by the graph, so more than one result is possible.
func (p *Project) Drivers(input Connection) []Connection {
	var out []Connection
	for output, inputs := range p.connections {
		if slices.Contains(inputs, input) {
			out = append(out, output)
		}
	}
	slices.SortFunc(out, compareConnection)
	return out
}

func compareConnection(a, b Connection) int {
	if c := cmpUint(uint64(a.Instance), uint64(b.Instance)); c != 0 {
		return c
	}
	if c := cmpUint(uint64(a.Terminal.Kind), uint64(b.Terminal.Kind)); c != 0 {
		return c
	}
	return cmpUint(a.Terminal.Index, b.Terminal.Index)
}
