package tracker

import (
	"fmt"
	"time"
)

// IntervalStore holds every recorded interval keyed by id.
// It is not safe for concurrent use; Engine serialises access to it.
type IntervalStore struct {
	byID map[string]*Interval
}

// NewIntervalStore returns an empty store.
func NewIntervalStore() *IntervalStore {
	return &IntervalStore{byID: make(map[string]*Interval)}
}

// Append inserts iv. It fails with ErrDuplicateID if the id is taken.
func (s *IntervalStore) Append(iv Interval) error {
	if _, ok := s.byID[iv.ID]; ok {
		return fmt.Errorf("interval %s: %w", iv.ID, ErrDuplicateID)
	}
	if iv.End != nil {
		end := *iv.End
		iv.End = &end
	}
	s.byID[iv.ID] = &iv
	return nil
}

// Get returns a copy of the interval with the given id.
func (s *IntervalStore) Get(id string) (Interval, error) {
	iv, ok := s.byID[id]
	if !ok {
		return Interval{}, fmt.Errorf("interval %s: %w", id, ErrNotFound)
	}
	return copyInterval(iv), nil
}

// ForActivity returns every interval owned by activityID, in no particular order.
func (s *IntervalStore) ForActivity(activityID string) []Interval {
	var out []Interval
	for _, iv := range s.byID {
		if iv.ActivityID == activityID {
			out = append(out, copyInterval(iv))
		}
	}
	return out
}

// Remove deletes the interval unconditionally.
func (s *IntervalStore) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("interval %s: %w", id, ErrNotFound)
	}
	delete(s.byID, id)
	return nil
}

// All returns every interval, unordered.
func (s *IntervalStore) All() []Interval {
	out := make([]Interval, 0, len(s.byID))
	for _, iv := range s.byID {
		out = append(out, copyInterval(iv))
	}
	return out
}

// Len returns the number of stored intervals.
func (s *IntervalStore) Len() int {
	return len(s.byID)
}

// stop closes the interval in place. Already-closed intervals are left as is.
func (s *IntervalStore) stop(id string, at time.Time) (bool, error) {
	iv, ok := s.byID[id]
	if !ok {
		return false, fmt.Errorf("interval %s: %w", id, ErrNotFound)
	}
	return iv.Stop(at), nil
}

// copyInterval detaches the End pointer so callers cannot mutate stored state.
func copyInterval(iv *Interval) Interval {
	out := *iv
	if iv.End != nil {
		end := *iv.End
		out.End = &end
	}
	return out
}
