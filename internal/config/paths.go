package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/wsgraph/config.yml
// - macOS: ~/Library/Application Support/wsgraph/config.yml
// - Windows: %APPDATA%\wsgraph\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wsgraph", "config.yml"), nil
}
