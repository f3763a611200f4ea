/*
Package domain contains the core data model of the logicx circuit editor.

It defines the circuit graph (templates, placements, the output-keyed
connection graph and the visual wire list), the textual codec used for
connection endpoints, and the resolver that turns a pair of terminals into
a directed signal edge. This package is kept pure and free of I/O,
following Hexagonal Architecture principles.

# Key Entities

  - Template: A reusable component definition (terminals and driver).
  - Placement: One positioned instance of a template on the canvas.
  - Connection: An (instance, terminal) endpoint, encoded as "O3:2" / "I0:1".
  - Wire: The visual edge emitted for every resolved connection.
  - Project: The aggregate root owning all of the above.
*/
package domain
