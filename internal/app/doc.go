// Package app is the composition root of the gallery.
//
// # Overview
//
// Run wires configuration, the session log, the favorites store, the catalog
// client and the controller together and hands them to the TUI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> LoadConfig()          config file plus flag overrides
//	       ├─────> OpenLogger()          append-only session log
//	       ├─────> kv.Open()             SQLite store
//	       ├─────> favorites.Load()      persisted favorite photo ids
//	       ├─────> catalog.NewClient()   JSON API client
//	       ├─────> tabs.New()            controller over a fresh session
//	       └─────> ui.Run()              TUI (blocks)
//
// The favorites set is written back exactly once when Run returns, whether
// the UI exited normally, failed, or the context was cancelled.
//
// # Maintenance helpers
//
// Favorites, ClearFavorites and Logs back the non-interactive subcommands.
// They open the same store and log file the TUI uses, so they must not run
// while a TUI session holds the database.
package app
