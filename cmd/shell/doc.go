// Package main is the entry point for the Aura terminal shell.
//
// The shell probes a list of relay candidates, restores the operator
// session from SQLite and runs the bubbletea desktop. A background
// monitor polls relay health and feeds the sidebar status.
//
// Configuration:
//   - YAML file, see internal/shell/config (default under the user config dir)
//   - AURA_API_BASE, AURA_HOST environment overrides
//
// Usage:
//
//	aura                 # run the desktop
//	aura probe           # print the reachable relay base
//	aura state --summary # one-line view of the relay state
//	aura logout          # forget the persisted session
//
// Logs go to the configured log file since stdout belongs to the UI.
package main
