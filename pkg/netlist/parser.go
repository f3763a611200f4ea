package netlist

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/aretw0/logicx/pkg/domain"
)

// ErrRejected marks a statement the project refused to connect.
var ErrRejected = errors.New("connection rejected")

var parser = participle.MustBuild[Netlist](
	participle.Lexer(Lexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse parses a netlist from a reader.
func Parse(r io.Reader) (*Netlist, error) {
	n, err := parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return n, nil
}

// ParseString parses a netlist from a string.
func ParseString(input string) (*Netlist, error) {
	n, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return n, nil
}

// Apply folds every statement into p through the connection resolver.
// Rejected pairs do not stop the remaining statements; they are returned
// joined, each wrapping ErrRejected or a token error.
func Apply(p *domain.Project, n *Netlist) (int, error) {
	applied := 0
	var errs []error

	for _, st := range n.Statements {
		from, err := domain.ParseConnection(st.From)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", st.Pos.Line, err))
			continue
		}
		for _, token := range st.To {
			to, err := domain.ParseConnection(token)
			if err != nil {
				errs = append(errs, fmt.Errorf("line %d: %w", st.Pos.Line, err))
				continue
			}
			if _, ok := p.Connect(from, to); !ok {
				errs = append(errs, fmt.Errorf("line %d: %s -> %s: %w", st.Pos.Line, from, to, ErrRejected))
				continue
			}
			applied++
		}
	}

	return applied, errors.Join(errs...)
}

// Format renders the connection graph of p, one output per line.
func Format(p *domain.Project) string {
	var sb strings.Builder
	for _, e := range p.Connections() {
		sb.WriteString(e.Output.String())
		sb.WriteString(" -> ")
		for i, in := range e.Inputs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(in.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
