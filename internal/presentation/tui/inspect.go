package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/logicx/pkg/domain"
)

// ProjectMarkdown summarizes a project as markdown tables: templates,
// placements and the connection graph.
func ProjectMarkdown(p *domain.Project) string {
	var sb strings.Builder

	sb.WriteString("# Project\n\n")
	fmt.Fprintf(&sb, "%d templates, %d instances, %d connections, %d wires.\n\n",
		len(p.Templates()), p.Len(), p.ConnectionCount(), len(p.Wires()))

	sb.WriteString("## Templates\n\n")
	sb.WriteString("| ID | Name | Inputs | Outputs | Driver |\n")
	sb.WriteString("|---:|---|---|---|---|\n")
	for _, t := range p.Templates() {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
			t.ID, cell(t.Name), cell(strings.Join(t.Inputs, ", ")), cell(strings.Join(t.Outputs, ", ")), t.Driver.Kind)
	}

	sb.WriteString("\n## Placements\n\n")
	sb.WriteString("| Instance | Template | Label | Position |\n")
	sb.WriteString("|---:|---|---|---|\n")
	for _, pl := range p.Placements() {
		name := fmt.Sprintf("%d", pl.Template)
		if t, ok := p.Template(pl.Template); ok {
			name = t.Name
		}
		label := ""
		if pl.Label != nil {
			label = *pl.Label
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | (%g, %g) |\n", pl.Instance, cell(name), cell(label), pl.Pos.X, pl.Pos.Y)
	}

	if edges := p.Connections(); len(edges) > 0 {
		sb.WriteString("\n## Connections\n\n")
		sb.WriteString("| Output | Inputs |\n")
		sb.WriteString("|---|---|\n")
		for _, e := range edges {
			inputs := make([]string, 0, len(e.Inputs))
			for _, in := range e.Inputs {
				inputs = append(inputs, "`"+in.String()+"`")
			}
			fmt.Fprintf(&sb, "| `%s` | %s |\n", e.Output, strings.Join(inputs, ", "))
		}
	}

	return sb.String()
}

// cell escapes table separators.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
