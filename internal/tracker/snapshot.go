package tracker

import "fmt"

// SnapshotVersion is the current Snapshot layout.
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of an engine's state, suitable for
// persisting between runs.
type Snapshot struct {
	Version    int        `json:"version"`
	Activities []Activity `json:"activities"`
	Intervals  []Interval `json:"intervals"`
}

// Snapshot copies the engine state. Intervals are most recent first.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	s := Snapshot{
		Version:    SnapshotVersion,
		Activities: e.activities.List(),
		Intervals:  e.intervals.All(),
	}
	e.mu.RUnlock()
	SortByStartDesc(s.Intervals)
	return s
}

// Restore builds an engine from a snapshot and rebuilds the active-interval
// index from its open intervals. An activity flagged inactive while owning an
// open interval is marked active; an activity flagged active without one is
// kept as is, matching what Toggle tolerates.
func Restore(s Snapshot, opts ...Option) (*Engine, error) {
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported %d", s.Version, SnapshotVersion)
	}
	e := NewEngine(opts...)
	for _, a := range s.Activities {
		if a.ID == "" {
			return nil, fmt.Errorf("activity %q has no id: %w", a.Name, ErrInvalidState)
		}
		if err := e.activities.Register(a); err != nil {
			return nil, err
		}
	}
	for _, iv := range s.Intervals {
		if iv.ID == "" {
			return nil, fmt.Errorf("interval starting %s has no id: %w", iv.Start, ErrInvalidState)
		}
		if err := e.intervals.Append(iv); err != nil {
			return nil, err
		}
	}
	if err := e.active.rebuild(e.intervals); err != nil {
		return nil, err
	}

	for _, a := range e.activities.List() {
		_, open := e.active.get(a.ID)
		switch {
		case open && !a.Active:
			e.logger.Warn("restored inactive activity with an open interval; marking active", "activity", a.ID)
			_ = e.activities.SetActive(a.ID, true)
		case !open && a.Active:
			e.logger.Warn("restored active activity without an open interval",
				"activity", a.ID, "error", ErrInvalidState)
		}
	}
	return e, nil
}
