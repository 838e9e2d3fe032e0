// Package appconfig loads the global config file and caches it across
// lookups, reloading only when the file on disk changes.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vimo-ai/eterm/internal/appdirs"
	"github.com/vimo-ai/eterm/internal/identity"
	"github.com/vimo-ai/eterm/internal/logging"
	"github.com/vimo-ai/eterm/internal/session"
)

// Config represents the global config file.
type Config struct {
	Logging logging.Config `yaml:"logging,omitempty"`
	Session session.Config `yaml:"session,omitempty"`
}

// Defaults returns the built-in configuration. Logging defaults depend on the
// run mode, so they resolve at logging.Init time, not here.
func Defaults() Config {
	return Config{
		Session: session.Config{}.Normalized(),
	}
}

// DefaultPath returns the default global config path.
func DefaultPath() (string, error) {
	dir, err := appdirs.ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// Loader caches config values and reloads when the file changes.
type Loader struct {
	path     string
	lastRead fileState
	cached   Config
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewLoader creates a config loader for the provided path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:   strings.TrimSpace(path),
		cached: Defaults(),
	}
}

// Load returns the cached config, reloading if the file changed. A missing
// file is not an error; defaults apply.
func (l *Loader) Load() (Config, error) {
	if l == nil {
		return Defaults(), errors.New("appconfig: nil loader")
	}
	path := strings.TrimSpace(l.path)
	if path == "" {
		return Defaults(), errors.New("appconfig: empty config path")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.cached = Defaults()
			l.lastRead = fileState{}
			return l.cached, nil
		}
		return Defaults(), err
	}
	state := fileState{modTime: info.ModTime(), size: info.Size()}
	if state == l.lastRead {
		return l.cached, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("appconfig: parse %s: %w", path, err)
	}
	cfg.Session = cfg.Session.Normalized()
	l.cached = cfg
	l.lastRead = state
	return cfg, nil
}

// Path returns the loader's config path.
func (l *Loader) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}
