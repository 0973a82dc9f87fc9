// Package ui renders the lumen terminal interface.
//
// # Overview
//
// The interface is a Bubble Tea program with four panes: the gallery, the
// people browser, the batch jobs board, and the server settings panel. The
// Model holds only presentation state (cursor positions, the focused text
// input, overlay visibility); everything about the album itself lives in
// the controller and is read through point-in-time snapshots.
//
// # Data flow
//
// Key handlers turn into controller calls wrapped as tea commands, so the
// update loop never blocks on the network. When a command finishes it
// emits a refresh message and the model re-reads the controller snapshot.
// Inline status messages carry sequence numbers; the model schedules one
// expiry tick per message and the clear is dropped if a newer message
// took the surface in the meantime.
//
// # Theming
//
// Colors come from a named lipgloss theme resolved from the user's
// preferences file. Dracula is the default.
package ui
