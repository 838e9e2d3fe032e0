// Package appdirs resolves the on-disk directories eterm state lives in.
// A single env override redirects everything, which is what tests and
// sandboxed host applications need.
package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vimo-ai/eterm/internal/identity"
)

// ConfigDirEnv overrides the config/state root directory.
const ConfigDirEnv = "ETERM_CONFIG_DIR"

// ConfigDirPath resolves the config root without creating it.
func ConfigDirPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(ConfigDirEnv)); override != "" {
		return filepath.Clean(override), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("appdirs: resolve config dir: %w", err)
	}
	return filepath.Join(base, identity.AppSlug), nil
}

// ConfigDir resolves the config root and creates it with owner-only
// permissions. Snapshots can hold working directories and commands, so the
// directory stays private.
func ConfigDir() (string, error) {
	dir, err := ConfigDirPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("appdirs: create config dir: %w", err)
	}
	return dir, nil
}

// SessionDirPath resolves the default snapshot directory without creating it.
func SessionDirPath() (string, error) {
	dir, err := ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.SessionDirName), nil
}

// LogFilePath resolves the default engine log path without creating it.
func LogFilePath() (string, error) {
	dir, err := ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "engine.log"), nil
}
