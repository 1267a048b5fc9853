package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fakeyudi/timetrack/internal/store"
	"github.com/fakeyudi/timetrack/internal/tracker"
)

// workspace is the engine loaded from disk for one command invocation.
type workspace struct {
	store  store.StateStore
	engine *tracker.Engine
	dirty  bool
}

// openWorkspace loads the saved state, or starts empty when none exists.
func openWorkspace() (*workspace, error) {
	st, err := store.NewStateStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	e, err := loadEngine(st)
	if err != nil {
		return nil, err
	}
	ws := &workspace{store: st, engine: e}
	e.Subscribe(func(tracker.Change) { ws.dirty = true })
	return ws, nil
}

func loadEngine(st store.StateStore) (*tracker.Engine, error) {
	opts := []tracker.Option{tracker.WithLogger(logger)}
	snap, err := st.Load()
	if errors.Is(err, store.ErrNoState) {
		logger.Debug("no saved state, starting empty", "path", st.Path())
		return tracker.NewEngine(opts...), nil
	}
	if err != nil {
		return nil, err
	}
	e, err := tracker.Restore(snap, opts...)
	if err != nil {
		return nil, fmt.Errorf("restoring %s: %w", st.Path(), err)
	}
	return e, nil
}

// commit saves the engine if any mutation happened since it was loaded.
func (w *workspace) commit() error {
	if !w.dirty {
		return nil
	}
	if err := w.store.Save(w.engine.Snapshot()); err != nil {
		return err
	}
	w.dirty = false
	logger.Debug("state saved", "path", w.store.Path())
	return nil
}

// resolveActivity finds an activity by exact id, then by case-insensitive name.
func resolveActivity(e *tracker.Engine, ref string) (tracker.Activity, error) {
	if a, err := e.Activity(ref); err == nil {
		return a, nil
	}
	var matches []tracker.Activity
	for _, a := range e.ListActivities() {
		if strings.EqualFold(a.Name, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return tracker.Activity{}, fmt.Errorf("activity %q: %w", ref, tracker.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return tracker.Activity{}, fmt.Errorf("activity name %q is ambiguous (%d matches), use the id", ref, len(matches))
	}
}
