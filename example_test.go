package logicx_test

import (
	"fmt"

	"github.com/aretw0/logicx"
	"github.com/aretw0/logicx/pkg/domain"
	"github.com/aretw0/logicx/pkg/interaction"
)

// ExampleEditor demonstrates a drag followed by a wire gesture on the default project.
func ExampleEditor() {
	ed := logicx.New()

	// 1. Drag the "And" gate (instance 2) by two grid units to the right.
	press := interaction.PointerEvent{Pos: domain.Pt(100, 100), Button: interaction.ButtonPrimary}
	ed.PressInstance(press, 2)
	ed.Move(interaction.PointerEvent{Pos: domain.Pt(170, 100), Button: interaction.ButtonPrimary})
	ed.Release(press)

	// 2. Wire the input pin (instance 0) to the gate's second input.
	ed.PressTerminal(press, domain.OutputOf(0, 0))
	ed.ReleaseOnTerminal(press, domain.InputOf(2, 1))

	p := ed.Project()
	pl, _ := p.Placement(2)
	fmt.Printf("And at %v\n", pl.Pos)
	for _, e := range p.Connections() {
		fmt.Printf("%s -> %v\n", e.Output, e.Inputs)
	}
	// Output:
	// And at {4 0}
	// O0:0 -> [I2:1]
}
