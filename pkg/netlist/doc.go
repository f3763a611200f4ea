// Package netlist reads and writes the connection graph as plain text.
//
// Each statement joins one endpoint to one or more others using the
// connection token syntax. Comments start with '#':
//
//	# input drives both gate inputs
//	O0:0 -> I2:0, I2:1
//	O2:0 -> I1:0
//
// Endpoints are resolved symmetrically when applied, so "I1:0 -> O2:0"
// describes the same edge as "O2:0 -> I1:0".
package netlist
