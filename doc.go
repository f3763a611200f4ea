/*
Package logicx is the core of an interactive logic-circuit editor.

Component instances are placed on a grid, their input and output terminals
are joined by wires, and the resulting project is serialized as a JSON or
YAML document. The package wraps the pieces behind one Editor:

  - pkg/domain: the circuit graph model, the connection token codec and the
    connection resolver.
  - pkg/interaction: the pointer controller turning press, move and release
    events into instance drags, wire drops and pans.
  - pkg/schema: the serialized document and its validation.

# Concept

The host owns rendering and input. It forwards pointer events to the Editor,
which owns the project. Every mutation happens behind one lock, so the
Editor can be shared by an HTTP adapter and a UI loop alike. Gestures never
fail: a wire dropped on an incompatible terminal is discarded silently and
surfaced only through hooks.

# Usage

	package main

	import (
		"fmt"

		"github.com/aretw0/logicx"
		"github.com/aretw0/logicx/pkg/domain"
		"github.com/aretw0/logicx/pkg/interaction"
		"github.com/aretw0/logicx/pkg/schema"
	)

	func main() {
		ed := logicx.New()

		// Drag a wire from the input pin to the first gate input.
		ev := interaction.PointerEvent{Button: interaction.ButtonPrimary}
		ed.PressTerminal(ev, domain.OutputOf(0, 0))
		ed.ReleaseOnTerminal(ev, domain.InputOf(2, 0))

		data, _ := ed.Save(schema.FormatYAML)
		fmt.Println(string(data))
	}
*/
package logicx
