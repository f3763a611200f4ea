package domain

// Resolve decides whether two endpoints form a signal edge. It is
// symmetric: exactly one side must be an Input and the other an Output,
// in either order. Any other combination yields ok == false.
func Resolve(a, b Connection) (input, output Connection, ok bool) {
	switch {
	case a.Terminal.IsInput() && b.Terminal.IsOutput():
		return a, b, true
	case a.Terminal.IsOutput() && b.Terminal.IsInput():
		return b, a, true
	}
	return Connection{}, Connection{}, false
}

// Connect folds a completed wire gesture into the graph. The input is
// appended under the output's key and a matching Wire is emitted.
// Incompatible terminals or endpoints that no longer resolve are dropped
// without error and leave the project unchanged.
func (p *Project) Connect(a, b Connection) (Wire, bool) {
	input, output, ok := Resolve(a, b)
	if !ok {
		return Wire{}, false
	}
	if err := p.checkEdge(output, input); err != nil {
		return Wire{}, false
	}

	p.connections[output] = append(p.connections[output], input)
	w := Wire{
		From:         output.Instance,
		FromTerminal: output.Terminal,
		To:           input.Instance,
		ToTerminal:   input.Terminal,
	}
	p.wires = append(p.wires, w)
	return w, true
}
