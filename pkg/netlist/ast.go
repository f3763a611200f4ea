package netlist

import "github.com/alecthomas/participle/v2/lexer"

// Netlist is a parsed netlist file.
type Netlist struct {
	Statements []*Statement `parser:"@@*"`
}

// Statement joins one endpoint to a list of others.
type Statement struct {
	Pos lexer.Position

	From string   `parser:"@Token Arrow"`
	To   []string `parser:"@Token (Comma @Token)*"`
}
