// Package state owns the relay's in-memory SystemState.
//
// The Store is the only writer. Handlers never touch the underlying slices:
// they call a mutation method, which runs under one lock, and read through
// Snapshot, which returns a deep copy. Tool calls are applied after the AI
// provider returns, so no lock is held across network I/O.
//
// State is ephemeral and lost on restart. A TOML seed file can replace the
// default boot contents:
//
//	[user]
//	name = "Admin"
//	robot_name = "Aura-X"
//	credits = 12450.75
//	health = 100
//
//	[[emails]]
//	id = "e1"
//	sender = "Nexus_Systems"
//	subject = "System Upgrade v6.0"
package state
