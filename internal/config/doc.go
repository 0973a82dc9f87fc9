// Package config handles loading and parsing lumen configuration files.
//
// # Overview
//
// This package reads lumen's TOML configuration to discover the album
// server's address, the batch-job polling cadence, and the log and watch
// directories. The file is small on purpose: everything about the album
// itself lives server-side and is edited through the settings panel.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lumen/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. LUMEN_SERVER_URL (process environment or a .env file) wins over
//     whatever the file says
//
// # Default Values
//
//   - Config file: ~/.config/lumen/config.toml
//   - Server URL: http://127.0.0.1:8000
//   - Poll interval: 2 seconds
//   - Log directory: ~/.local/share/lumen/logs
//   - Watch directory: unset (the watch command requires one)
//
// # TOML Format
//
// Example lumen config.toml:
//
//	server_url = "http://127.0.0.1:8000"
//	poll_seconds = 2
//	log_dir = "~/.local/share/lumen/logs"
//	watch_dir = "~/Pictures/inbox"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors
// (except os.ErrNotExist, which triggers defaults), and TOML parsing
// errors. A missing config file is NOT an error, so lumen works
// out-of-the-box against a locally running server.
package config
