// Package schema defines the serialized form of a circuit project and the
// rules a document must satisfy before it becomes a domain.Project.
//
// A document is a plain data tree that round-trips through JSON and YAML.
// Terminal endpoints are written as connection tokens ("O0:0", "I2:1"), so
// the connection graph is a map from an output token to the input tokens it
// drives:
//
//	templates:
//	  - id: 1
//	    name: and
//	    inputs: [a, b]
//	    outputs: [and]
//	    driver: {kind: truth_table, truth: {0: 0, 1: 0, 2: 0, 3: 1}}
//	placements:
//	  - {instance: 2, template: 1, label: And, pos: {x: 2, y: 0}}
//	connections:
//	  O0:0: ["I2:0", "I2:1"]
//
// Decode runs the full pipeline (unmarshal, Validate, ToProject). Validation
// failures are reported as an *AggregateError of *ValidationError values:
//
//	p, err := schema.Decode(data, schema.FormatYAML)
//	for _, e := range schema.ValidationErrors(err) {
//	    fmt.Println(e)
//	}
package schema
