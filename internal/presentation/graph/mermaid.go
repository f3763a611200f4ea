package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/logicx/pkg/domain"
)

// GraphOverlay contains live gesture data to visualize on the graph.
type GraphOverlay struct {
	// Dragged is the instance under an instance drag, if any.
	Dragged *domain.InstanceID
	// Pending is the origin of an in-progress wire, if any.
	Pending *domain.Connection
}

// GenerateMermaid produces a Mermaid flowchart of the project's placements
// and connection graph. It applies semantic styling by driver kind:
// - Input / Output pins: (["Stadium"])
// - Subcircuit: [["Subroutine"]]
// - Script: [/"Parallelogram"/]
// - Default: ["Rectangle"]
// Each fan-out target becomes one edge labelled with the terminal names.
// It also applies overlay styles (Dragged/Pending) if provided.
func GenerateMermaid(p *domain.Project, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, pl := range p.Placements() {
		t, _ := p.Template(pl.Template)

		opener, closer := "[", "]"
		name := ""
		if t != nil {
			name = t.Name
			switch t.Driver.Kind {
			case domain.DriverInput, domain.DriverOutput:
				opener, closer = "([", "])" // Stadium
			case domain.DriverSubcircuit:
				opener, closer = "[[", "]]" // Subroutine
			case domain.DriverScript:
				opener, closer = "[/", "/]" // Parallelogram
			}
		}

		text := name
		if pl.Label != nil && *pl.Label != "" {
			text = escapeLabel(*pl.Label)
			if name != "" && !strings.EqualFold(*pl.Label, name) {
				text = fmt.Sprintf("%s <br/> %s", text, name)
			}
		}
		if text == "" {
			text = fmt.Sprintf("#%d", pl.Instance)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(pl.Instance), opener, text, closer)
	}

	for _, e := range p.Connections() {
		from := terminalName(p, e.Output)
		for _, in := range e.Inputs {
			label := fmt.Sprintf("%s → %s", from, terminalName(p, in))
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(e.Output.Instance), label, nodeID(in.Instance))
		}
	}

	// Apply Overlay Styles
	if overlay != nil && (overlay.Dragged != nil || overlay.Pending != nil) {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef dragged fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef pending fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		if overlay.Dragged != nil {
			if _, ok := p.Placement(*overlay.Dragged); ok {
				fmt.Fprintf(&sb, "    class %s dragged;\n", nodeID(*overlay.Dragged))
			}
		}
		if overlay.Pending != nil {
			if _, ok := p.Placement(overlay.Pending.Instance); ok {
				fmt.Fprintf(&sb, "    class %s pending;\n", nodeID(overlay.Pending.Instance))
			}
		}
	}

	return sb.String()
}

func nodeID(id domain.InstanceID) string {
	return fmt.Sprintf("n%d", id)
}

// terminalName resolves the pin name of c, falling back to its token form.
func terminalName(p *domain.Project, c domain.Connection) string {
	t, ok := p.TemplateOf(c.Instance)
	if !ok || !t.HasTerminal(c.Terminal) {
		return c.Terminal.String()
	}
	if c.Terminal.IsInput() {
		return escapeLabel(t.Inputs[c.Terminal.Index])
	}
	return escapeLabel(t.Outputs[c.Terminal.Index])
}

// escapeLabel replaces double quotes so the text fits a quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
