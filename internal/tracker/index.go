package tracker

// activeIndex maps an activity id to the id of its single open interval.
// Only Engine mutates it, always together with the IntervalStore.
type activeIndex struct {
	open map[string]string
}

func newActiveIndex() *activeIndex {
	return &activeIndex{open: make(map[string]string)}
}

func (x *activeIndex) get(activityID string) (string, bool) {
	id, ok := x.open[activityID]
	return id, ok
}

func (x *activeIndex) put(activityID, intervalID string) {
	x.open[activityID] = intervalID
}

func (x *activeIndex) remove(activityID string) {
	delete(x.open, activityID)
}

// rebuild recomputes the index from the store's open intervals. Orphaned
// intervals are skipped. It fails with ErrInvalidState if an activity owns
// more than one open interval.
func (x *activeIndex) rebuild(store *IntervalStore) error {
	open := make(map[string]string)
	for _, iv := range store.byID {
		if !iv.IsOpen() || iv.ActivityID == "" {
			continue
		}
		if prev, dup := open[iv.ActivityID]; dup {
			return &StateError{ActivityID: iv.ActivityID, Reason: "open intervals " + prev + " and " + iv.ID}
		}
		open[iv.ActivityID] = iv.ID
	}
	x.open = open
	return nil
}

// StateError describes an activity whose intervals break the
// one-open-interval rule. It unwraps to ErrInvalidState.
type StateError struct {
	ActivityID string
	Reason     string
}

func (e *StateError) Error() string {
	return "activity " + e.ActivityID + ": " + e.Reason
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
