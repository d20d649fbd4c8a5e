// Package paths provides the shell's standard filesystem locations.
//
// # Directory Structure
//
//	$XDG_CONFIG_HOME/aura/
//	  ├── shell.yaml   (shell config)
//	  ├── storage.db   (persisted profile, key aura_user)
//	  └── shell.log    (shell logs; stdout belongs to the TUI)
package paths
