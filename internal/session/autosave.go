package session

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// CaptureFunc produces the snapshot to persist. It runs on the autosaver's
// goroutine, so implementations must marshal workspace state through their
// own dispatcher if they are not safe to call concurrently.
type CaptureFunc func() *Snapshot

// Autosaver periodically captures and saves a snapshot, and exposes Kick for
// saving right after a structural change instead of waiting a full interval.
type Autosaver struct {
	store    *Store
	capture  CaptureFunc
	interval time.Duration
	kick     chan struct{}
}

// NewAutosaver wires a capture function to a store. A zero or negative
// interval falls back to the default.
func NewAutosaver(store *Store, capture CaptureFunc, interval time.Duration) (*Autosaver, error) {
	if store == nil {
		return nil, errors.New("session: autosaver needs a store")
	}
	if capture == nil {
		return nil, errors.New("session: autosaver needs a capture func")
	}
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &Autosaver{
		store:    store,
		capture:  capture,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}, nil
}

// Kick requests a save ahead of the next tick. Multiple kicks before the
// save runs coalesce into one.
func (a *Autosaver) Kick() {
	if a == nil {
		return
	}
	select {
	case a.kick <- struct{}{}:
	default:
	}
}

// Run saves on every interval tick and on every kick until the context is
// done, then takes one final save so shutdown never loses the last state.
func (a *Autosaver) Run(ctx context.Context) error {
	if a == nil {
		return errors.New("session: autosaver is nil")
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.saveOnce(context.Background())
			return ctx.Err()
		case <-ticker.C:
			a.saveOnce(ctx)
		case <-a.kick:
			a.saveOnce(ctx)
		}
	}
}

func (a *Autosaver) saveOnce(ctx context.Context) {
	snap := a.capture()
	if snap == nil {
		return
	}
	if err := a.store.Save(ctx, snap); err != nil {
		if errors.Is(err, ErrEmptySnapshot) {
			slog.Debug("skipping autosave of empty snapshot")
			return
		}
		slog.Warn("autosave failed", "err", err)
	}
}
