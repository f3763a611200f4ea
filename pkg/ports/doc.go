/*
Package ports defines the driven ports (interfaces) of the circuit editor.

These interfaces decouple the editor core from external implementations, so
the same Editor can be snapshotted into different storage backends.

# Key Interfaces

  - ProjectStore: Saves and restores named project snapshots.
*/
package ports
