package domain

// InstanceID identifies a placement within a project.
type InstanceID uint64

// ComponentID identifies a template within a project's registry.
type ComponentID uint64

// TerminalKind tells an input pin from an output pin.
type TerminalKind uint8

const (
	Input TerminalKind = iota + 1
	Output
)

func (k TerminalKind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return "unknown"
}

// Terminal is a pin of an instance, addressed by its position in the
// template's input or output list.
type Terminal struct {
	Kind  TerminalKind
	Index uint64
}

// In returns the input terminal at index i.
func In(i uint64) Terminal {
	return Terminal{Kind: Input, Index: i}
}

// Out returns the output terminal at index i.
func Out(i uint64) Terminal {
	return Terminal{Kind: Output, Index: i}
}

func (t Terminal) IsInput() bool {
	return t.Kind == Input
}

func (t Terminal) IsOutput() bool {
	return t.Kind == Output
}

// Connection is an endpoint reference: a terminal of a specific instance.
// Two endpoints are equal iff their canonical token encodings are equal.
type Connection struct {
	Instance InstanceID
	Terminal Terminal
}

// InputOf builds the endpoint for input i of instance id.
func InputOf(id InstanceID, i uint64) Connection {
	return Connection{Instance: id, Terminal: In(i)}
}

// OutputOf builds the endpoint for output i of instance id.
func OutputOf(id InstanceID, i uint64) Connection {
	return Connection{Instance: id, Terminal: Out(i)}
}
