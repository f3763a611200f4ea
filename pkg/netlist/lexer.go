package netlist

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer defines the lexical structure of netlist files.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Connection tokens, e.g. O3:2 (case-insensitive letter)
	{Name: "Token", Pattern: `[IOio][0-9]+:[0-9]+`},

	{Name: "Arrow", Pattern: `->`},
	{Name: "Comma", Pattern: `,`},
})
