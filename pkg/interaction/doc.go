/*
Package interaction implements the pointer state machine of the editor.

A Controller owns at most one gesture Session at a time. A press on an
instance starts a drag, a press on a terminal starts a wire, and a middle
button press on the surface pans the view. Move events update the live
session and Release events with the same button end it. Wire gestures that
end on a terminal are folded into the project through domain.Project.Connect.

The controller never returns errors. References that cannot be resolved
degrade to no-ops so a live editing session is never interrupted.

All methods must be called from a single goroutine (or under an external
lock); the controller relies on run-to-completion event handling.
*/
package interaction
