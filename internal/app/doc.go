// Package app wires configuration, the album client, the controller, and
// the terminal UI into a runnable program.
//
// Run owns the interactive path: it loads configuration and preferences,
// routes the global logger to a file so the TUI keeps the terminal to
// itself, and hands a controller to the Bubble Tea program. Setup is the
// shared front half for one-shot commands that talk to the server without
// drawing a screen.
package app
