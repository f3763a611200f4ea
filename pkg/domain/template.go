package domain

import (
	"fmt"
	"slices"
)

// DriverKind selects how a template computes its outputs.
type DriverKind string

const (
	DriverTruthTable DriverKind = "truth_table"
	DriverSubcircuit DriverKind = "subcircuit"
	DriverScript     DriverKind = "script"
	DriverInput      DriverKind = "input"  // Primary input pin
	DriverOutput     DriverKind = "output" // Primary output pin
)

// PortRef names a terminal of a component inside a subcircuit.
type PortRef struct {
	Component ComponentID
	Terminal  string
}

// Driver describes the behaviour attached to a template. It is carried
// through load/save untouched; nothing in this module evaluates it.
type Driver struct {
	Kind DriverKind

	// Truth maps an input bit pattern to an output bit pattern (DriverTruthTable).
	Truth map[uint64]uint64

	// Wiring maps inner ports to inner ports (DriverSubcircuit).
	Wiring map[PortRef]PortRef

	// Script references external script source (DriverScript).
	Script string
}

// TruthTable builds a truth-table driver from (input, output) pairs.
func TruthTable(pairs ...[2]uint64) Driver {
	truth := make(map[uint64]uint64, len(pairs))
	for _, p := range pairs {
		truth[p[0]] = p[1]
	}
	return Driver{Kind: DriverTruthTable, Truth: truth}
}

func SubcircuitDriver(wiring map[PortRef]PortRef) Driver {
	return Driver{Kind: DriverSubcircuit, Wiring: wiring}
}

func ScriptDriver(script string) Driver {
	return Driver{Kind: DriverScript, Script: script}
}

func InputDriver() Driver {
	return Driver{Kind: DriverInput}
}

func OutputDriver() Driver {
	return Driver{Kind: DriverOutput}
}

func (d Driver) clone() Driver {
	out := Driver{Kind: d.Kind, Script: d.Script}
	if d.Truth != nil {
		out.Truth = make(map[uint64]uint64, len(d.Truth))
		for k, v := range d.Truth {
			out.Truth[k] = v
		}
	}
	if d.Wiring != nil {
		out.Wiring = make(map[PortRef]PortRef, len(d.Wiring))
		for k, v := range d.Wiring {
			out.Wiring[k] = v
		}
	}
	return out
}

// Template is a reusable component definition.
type Template struct {
	ID      ComponentID
	Name    string
	Inputs  []string
	Outputs []string
	Driver  Driver
}

// validate checks the fields every template needs to be saved and loaded.
func (tp *Template) validate() error {
	if tp.Name == "" {
		return fmt.Errorf("%w %d: empty name", ErrInvalidTemplate, tp.ID)
	}
	for _, names := range [][]string{tp.Inputs, tp.Outputs} {
		if slices.Contains(names, "") {
			return fmt.Errorf("%w %q: empty terminal name", ErrInvalidTemplate, tp.Name)
		}
	}
	switch tp.Driver.Kind {
	case DriverTruthTable, DriverSubcircuit, DriverInput, DriverOutput:
	case DriverScript:
		if tp.Driver.Script == "" {
			return fmt.Errorf("%w %q: script driver without source", ErrInvalidTemplate, tp.Name)
		}
	default:
		return fmt.Errorf("%w %q: unknown driver kind %q", ErrInvalidTemplate, tp.Name, tp.Driver.Kind)
	}
	for from, to := range tp.Driver.Wiring {
		if from.Terminal == "" || to.Terminal == "" {
			return fmt.Errorf("%w %q: wiring port without terminal", ErrInvalidTemplate, tp.Name)
		}
	}
	return nil
}

// HasTerminal reports whether t addresses an existing pin of the template.
func (tp *Template) HasTerminal(t Terminal) bool {
	switch t.Kind {
	case Input:
		return t.Index < uint64(len(tp.Inputs))
	case Output:
		return t.Index < uint64(len(tp.Outputs))
	}
	return false
}

// Size returns the (inputs, outputs) terminal counts.
func (tp *Template) Size() (int, int) {
	return len(tp.Inputs), len(tp.Outputs)
}

func (tp *Template) clone() *Template {
	return &Template{
		ID:      tp.ID,
		Name:    tp.Name,
		Inputs:  append([]string(nil), tp.Inputs...),
		Outputs: append([]string(nil), tp.Outputs...),
		Driver:  tp.Driver.clone(),
	}
}

// Placement is one instantiation of a template on the canvas.
type Placement struct {
	Instance    InstanceID
	Template    ComponentID
	Label       *string
	Pos         Coord
	Orientation float64
}

func (p *Placement) clone() *Placement {
	out := *p
	if p.Label != nil {
		label := *p.Label
		out.Label = &label
	}
	return &out
}

// Wire is the visual edge of a connection. It is kept in sync with the
// connection graph but is not authoritative over it.
type Wire struct {
	From         InstanceID
	FromTerminal Terminal
	Points       []Coord
	To           InstanceID
	ToTerminal   Terminal
}

// References reports whether the wire touches instance id.
func (w Wire) References(id InstanceID) bool {
	return w.From == id || w.To == id
}
