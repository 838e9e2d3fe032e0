package session

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vimo-ai/eterm/internal/appdirs"
	"github.com/vimo-ai/eterm/internal/identity"
	"github.com/vimo-ai/eterm/internal/userpath"
)

const (
	DefaultSaveInterval = 5 * time.Second
	DefaultBackups      = 5
)

// Duration decodes yaml scalars like "5s" or "2m" via time.ParseDuration.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("session: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config configures snapshot persistence.
type Config struct {
	Dir          string   `yaml:"dir,omitempty"`
	File         string   `yaml:"file,omitempty"`
	Backups      int      `yaml:"backups,omitempty"`
	SaveInterval Duration `yaml:"save_interval,omitempty"`
}

// Normalized fills defaults and expands the snapshot directory.
func (c Config) Normalized() Config {
	cfg := c
	if cfg.Dir == "" {
		if dir, err := appdirs.SessionDirPath(); err == nil {
			cfg.Dir = dir
		}
	}
	cfg.Dir = filepath.Clean(userpath.ExpandUser(cfg.Dir))
	if cfg.File == "" {
		cfg.File = identity.SessionFileName
	}
	if cfg.Backups <= 0 {
		cfg.Backups = DefaultBackups
	}
	if cfg.SaveInterval <= 0 {
		cfg.SaveInterval = Duration(DefaultSaveInterval)
	}
	return cfg
}

// Path returns the primary snapshot file path.
func (c Config) Path() string {
	return filepath.Join(c.Dir, c.File)
}
