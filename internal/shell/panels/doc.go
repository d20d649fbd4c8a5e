// Package panels implements the shell's applications.
//
// Each panel is a bubbletea model with its own local state and a small set
// of named modes cycled with tab. Panels talk to the relay through Relay,
// ask the root model to switch panels with Launch, and report profile
// changes with ProfileUpdatedMsg.
//
// Work that has no real backend is simulated with Simulate, a timer that
// delivers a message after a fixed delay. Status lines for such work carry
// the Simulated marker so the boundary stays visible.
package panels
