/*
Package observability provides tools for monitoring the circuit editor.

It includes lifecycle hooks that audit gestures to a structured logger and
Prometheus metrics fed from the same hooks. Both plug into the editor through
domain.Hooks and can be combined with Hooks.Merge.
*/
package observability
