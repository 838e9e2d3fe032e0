package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vimo-ai/eterm/internal/atomicfile"
)

// ErrEmptySnapshot is returned when an empty snapshot would overwrite a
// non-empty save. Transient zero-window states (e.g. during shutdown) must
// never clobber a good session file.
var ErrEmptySnapshot = errors.New("session: refusing to overwrite a non-empty snapshot with an empty one")

// Store persists snapshots to a primary file with rotating backups.
// Saves are serialized internally; the caller may invoke them from a
// background worker.
type Store struct {
	cfg Config

	mu sync.Mutex
}

// NewStore creates a store rooted at cfg.Dir.
func NewStore(cfg Config) (*Store, error) {
	cfg = cfg.Normalized()
	if cfg.Dir == "" || cfg.Dir == "." {
		return nil, errors.New("session: snapshot dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create snapshot dir: %w", err)
	}
	return &Store{cfg: cfg}, nil
}

// Path returns the primary snapshot file path.
func (s *Store) Path() string {
	return s.cfg.Path()
}

// backupPath returns the path of backup slot n, numbered 1 (newest) through
// Backups (oldest).
func (s *Store) backupPath(n int) string {
	return fmt.Sprintf("%s.%d", s.cfg.Path(), n)
}

// Save writes a snapshot: the current primary is promoted to backup slot 1,
// older backups shift down one slot, the oldest is discarded, and the new
// contents land in the primary via an atomic rename.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	if s == nil {
		return errors.New("session: store is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap == nil {
		return errors.New("session: snapshot is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Empty() && s.primaryHasWindows() {
		return ErrEmptySnapshot
	}

	out := *snap
	out.SchemaVersion = CurrentSchemaVersion
	if out.CapturedAt.IsZero() {
		out.CapturedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode snapshot: %w", err)
	}

	s.rotate()
	if err := atomicfile.Save(s.cfg.Path(), data, 0o600); err != nil {
		return err
	}
	return nil
}

// primaryHasWindows reports whether the current primary file holds a
// snapshot with at least one window.
func (s *Store) primaryHasWindows() bool {
	snap, err := s.decodeFile(s.cfg.Path())
	return err == nil && !snap.Empty()
}

// rotate shifts path -> path.1 -> path.2 ... discarding slot Backups.
func (s *Store) rotate() {
	if _, err := os.Stat(s.cfg.Path()); err != nil {
		return
	}
	_ = os.Remove(s.backupPath(s.cfg.Backups))
	for n := s.cfg.Backups - 1; n >= 1; n-- {
		_ = os.Rename(s.backupPath(n), s.backupPath(n+1))
	}
	_ = os.Rename(s.cfg.Path(), s.backupPath(1))
}

// Load reads the primary snapshot, falling back through the backup chain in
// recency order. A backup that wins the fallback is re-promoted to primary so
// the next save rotates from known-good contents. When nothing parses, an
// empty default snapshot is returned rather than an error: the engine starts
// fresh instead of refusing to start.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if s == nil {
		return nil, errors.New("session: store is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	primary := s.cfg.Path()
	if snap, err := s.decodeFile(primary); err == nil && !snap.Empty() {
		return snap, nil
	} else if err != nil && !os.IsNotExist(err) {
		slog.Warn("primary snapshot unreadable, trying backups", "path", primary, "err", err)
		s.preserveCorrupt(primary)
	}

	for n := 1; n <= s.cfg.Backups; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := s.backupPath(n)
		snap, err := s.decodeFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("snapshot backup unreadable", "path", path, "err", err)
			}
			continue
		}
		if snap.Empty() {
			continue
		}
		s.promote(path, snap)
		return snap, nil
	}
	return &Snapshot{SchemaVersion: CurrentSchemaVersion}, nil
}

// decodeFile reads, schema-validates, and decodes one snapshot file.
func (s *Store) decodeFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateBytes(data); err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("session: decode snapshot: %w", err)
	}
	if snap.SchemaVersion != CurrentSchemaVersion {
		return nil, fmt.Errorf("session: unknown schema version %d", snap.SchemaVersion)
	}
	return &snap, nil
}

// preserveCorrupt moves an unreadable primary aside instead of deleting it,
// so a bad deploy can still be debugged after recovery.
func (s *Store) preserveCorrupt(path string) {
	stamp := time.Now().UTC().Format("20060102-150405")
	_ = os.Rename(path, path+".corrupt-"+stamp)
}

// promote rewrites the winning backup as the primary file.
func (s *Store) promote(path string, snap *Snapshot) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	if err := atomicfile.Save(s.cfg.Path(), data, 0o600); err != nil {
		slog.Warn("failed to re-promote snapshot backup", "path", path, "err", err)
	}
}

// Backups lists existing backup files in recency order.
func (s *Store) Backups() []string {
	if s == nil {
		return nil
	}
	var out []string
	for n := 1; n <= s.cfg.Backups; n++ {
		path := s.backupPath(n)
		if _, err := os.Stat(path); err == nil {
			out = append(out, path)
		}
	}
	return out
}

// Prune removes backup files beyond the configured count, plus preserved
// corrupt files older than the given age.
func (s *Store) Prune(maxCorruptAge time.Duration) error {
	if s == nil {
		return errors.New("session: store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return fmt.Errorf("session: read snapshot dir: %w", err)
	}
	cutoff := time.Now().Add(-maxCorruptAge)
	prefix := s.cfg.File + ".corrupt-"
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			info, err := entry.Info()
			if err == nil && info.ModTime().Before(cutoff) {
				_ = os.Remove(filepath.Join(s.cfg.Dir, name))
			}
		}
	}
	// Drop backups past the configured slot count, e.g. after lowering it.
	for n := s.cfg.Backups + 1; ; n++ {
		path := s.backupPath(n)
		if _, err := os.Stat(path); err != nil {
			break
		}
		_ = os.Remove(path)
	}
	return nil
}
