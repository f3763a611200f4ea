package schema

import "github.com/aretw0/logicx/pkg/domain"

// Document is the serialized form of a project.
type Document struct {
	Templates  []TemplateDoc  `json:"templates" yaml:"templates" validate:"unique=ID,dive"`
	Placements []PlacementDoc `json:"placements" yaml:"placements" validate:"unique=Instance,dive"`

	// Connections maps an output token to the input tokens it drives.
	Connections map[string][]string `json:"connections,omitempty" yaml:"connections,omitempty" validate:"dive,keys,endpoint=output,endkeys,dive,endpoint=input"`

	Wires []WireDoc `json:"wires,omitempty" yaml:"wires,omitempty" validate:"dive"`
}

// TemplateDoc is a component definition.
type TemplateDoc struct {
	ID      uint64    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name" validate:"required"`
	Inputs  []string  `json:"inputs,omitempty" yaml:"inputs,omitempty" validate:"dive,required"`
	Outputs []string  `json:"outputs,omitempty" yaml:"outputs,omitempty" validate:"dive,required"`
	Driver  DriverDoc `json:"driver" yaml:"driver"`
}

// DriverDoc is the tagged driver descriptor of a template.
type DriverDoc struct {
	Kind   string            `json:"kind" yaml:"kind" validate:"required,oneof=truth_table subcircuit script input output"`
	Truth  map[uint64]uint64 `json:"truth,omitempty" yaml:"truth,omitempty"`
	Wiring []WiringDoc       `json:"wiring,omitempty" yaml:"wiring,omitempty" validate:"dive"`
	Script string            `json:"script,omitempty" yaml:"script,omitempty" validate:"required_if=Kind script"`
}

// WiringDoc is one inner edge of a subcircuit driver.
type WiringDoc struct {
	From PortDoc `json:"from" yaml:"from"`
	To   PortDoc `json:"to" yaml:"to"`
}

// PortDoc names a terminal of an inner component.
type PortDoc struct {
	Component uint64 `json:"component" yaml:"component"`
	Terminal  string `json:"terminal" yaml:"terminal" validate:"required"`
}

// PlacementDoc is one instance on the canvas.
type PlacementDoc struct {
	Instance    uint64       `json:"instance" yaml:"instance"`
	Template    uint64       `json:"template" yaml:"template"`
	Label       *string      `json:"label,omitempty" yaml:"label,omitempty"`
	Pos         domain.Coord `json:"pos" yaml:"pos"`
	Orientation float64      `json:"orientation,omitempty" yaml:"orientation,omitempty"`
}

// WireDoc is a visual wire between two endpoint tokens.
type WireDoc struct {
	From   string         `json:"from" yaml:"from" validate:"required,endpoint=output"`
	To     string         `json:"to" yaml:"to" validate:"required,endpoint=input"`
	Points []domain.Coord `json:"points,omitempty" yaml:"points,omitempty"`
}
