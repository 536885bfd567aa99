// Package config loads the gallery TOML configuration.
//
// Load resolves the path (default ~/.config/gallery/config.toml), expands a
// leading tilde and falls back to built-in defaults when the file is missing.
// Blank or zero fields also take their defaults, so a partial file is fine.
//
// Example config.toml:
//
//	api_base = "https://json.medrating.org"
//	timeout_seconds = 30
//	store_path = "~/.local/share/gallery/gallery.db"
//	log_path = "~/.local/state/gallery/gallery.log"
//	log_level = "info"
//	probe_rate = 8
//
// A missing file is not an error. Parse failures are, and are wrapped with
// "parse config".
package config
