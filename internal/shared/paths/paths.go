package paths

import (
	"os"
	"path/filepath"
)

// AppDir is the directory name used under the user config and state roots
const AppDir = "aura"

// File names inside the config directory
const (
	ShellConfigFile = "shell.yaml"
	StorageFile     = "storage.db"
	ShellLogFile    = "shell.log"
)

// ConfigDir returns the per-user config directory, falling back to the
// system temp dir when no home is available.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppDir)
	}
	return filepath.Join(os.TempDir(), AppDir)
}

// ShellConfig returns the default shell config path
func ShellConfig() string {
	return filepath.Join(ConfigDir(), ShellConfigFile)
}

// Storage returns the default path of the shell's persisted storage
func Storage() string {
	return filepath.Join(ConfigDir(), StorageFile)
}

// ShellLog returns the default shell log path
func ShellLog() string {
	return filepath.Join(ConfigDir(), ShellLogFile)
}

// Ensure creates the parent directory of path
func Ensure(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
