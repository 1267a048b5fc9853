package tracker

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock returns the current instant.
type Clock func() time.Time

// ChangeKind identifies what a mutation did.
type ChangeKind string

const (
	ActivityRegistered  ChangeKind = "activity_registered"
	IntervalStarted     ChangeKind = "interval_started"
	IntervalStopped     ChangeKind = "interval_stopped"
	IntervalDeleted     ChangeKind = "interval_deleted"
	ActivityDeactivated ChangeKind = "activity_deactivated" // flag flipped with no open interval to close
)

// Change is delivered to subscribers after every successful mutation.
type Change struct {
	Kind       ChangeKind
	ActivityID string
	IntervalID string
	At         time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the engine's source of the current instant.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger used for transitions and tolerated inconsistencies.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithIDGenerator replaces the UUID generator used for new ids.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// Engine owns the registry, the interval store and the active-interval index
// and mutates them together. Mutations are serialised by a write lock; queries
// share a read lock so they never observe a half-applied change.
type Engine struct {
	mu         sync.RWMutex
	activities *Registry
	intervals  *IntervalStore
	active     *activeIndex

	clock  Clock
	logger *slog.Logger
	newID  func() string

	subMu     sync.Mutex
	nextSubID int
	listeners map[int]func(Change)
}

// NewEngine returns an engine with no activities or intervals.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		activities: NewRegistry(),
		intervals:  NewIntervalStore(),
		active:     newActiveIndex(),
		clock:      time.Now,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:      uuid.NewString,
		listeners:  make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers fn to be called after each mutation, outside the
// engine's lock. The returned func removes the subscription.
func (e *Engine) Subscribe(fn func(Change)) (cancel func()) {
	e.subMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.listeners[id] = fn
	e.subMu.Unlock()
	return func() {
		e.subMu.Lock()
		delete(e.listeners, id)
		e.subMu.Unlock()
	}
}

func (e *Engine) notify(changes []Change) {
	if len(changes) == 0 {
		return
	}
	e.subMu.Lock()
	fns := make([]func(Change), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()
	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}

// RegisterActivity adds a new activity. An empty ID is replaced with a
// generated one and an empty Icon with DefaultIcon. An activity registered
// as Active gets its first interval opened immediately.
func (e *Engine) RegisterActivity(a Activity) (Activity, error) {
	if a.ID == "" {
		a.ID = e.newID()
	}
	if a.Icon == "" {
		a.Icon = DefaultIcon
	}
	startActive := a.Active
	a.Active = false

	e.mu.Lock()
	// The first interval's id is checked before the activity is stored so a
	// failed registration leaves no trace.
	var intervalID string
	if startActive {
		intervalID = e.newID()
		if _, err := e.intervals.Get(intervalID); err == nil {
			e.mu.Unlock()
			return Activity{}, fmt.Errorf("interval %s: %w", intervalID, ErrDuplicateID)
		}
	}
	if err := e.activities.Register(a); err != nil {
		e.mu.Unlock()
		return Activity{}, err
	}
	now := e.clock()
	changes := []Change{{Kind: ActivityRegistered, ActivityID: a.ID, At: now}}
	if startActive {
		c, err := e.activateLocked(a.ID, intervalID, now)
		if err != nil {
			e.mu.Unlock()
			return Activity{}, err
		}
		changes = append(changes, c)
	}
	out, _ := e.activities.Get(a.ID)
	e.mu.Unlock()

	e.logger.Debug("activity registered", "activity", out.ID, "name", out.Name, "active", out.Active)
	e.notify(changes)
	return out, nil
}

// Toggle flips an activity between inactive and active, opening or closing
// its interval accordingly, and returns the updated record.
func (e *Engine) Toggle(activityID string) (Activity, error) {
	e.mu.Lock()
	a, err := e.activities.Get(activityID)
	if err != nil {
		e.mu.Unlock()
		return Activity{}, err
	}
	now := e.clock()
	var change Change
	if a.Active {
		change = e.deactivateLocked(activityID, now)
	} else {
		change, err = e.activateLocked(activityID, e.newID(), now)
		if err != nil {
			e.mu.Unlock()
			return Activity{}, err
		}
	}
	out, _ := e.activities.Get(activityID)
	e.mu.Unlock()

	e.logger.Debug("activity toggled", "activity", activityID, "active", out.Active, "interval", change.IntervalID)
	e.notify([]Change{change})
	return out, nil
}

// activateLocked opens interval intervalID for activityID and marks it
// active. The caller holds e.mu.
func (e *Engine) activateLocked(activityID, intervalID string, now time.Time) (Change, error) {
	iv := Interval{ID: intervalID, Start: now, ActivityID: activityID}
	if err := e.intervals.Append(iv); err != nil {
		return Change{}, err
	}
	e.active.put(activityID, iv.ID)
	if err := e.activities.SetActive(activityID, true); err != nil {
		return Change{}, err
	}
	return Change{Kind: IntervalStarted, ActivityID: activityID, IntervalID: iv.ID, At: now}, nil
}

// deactivateLocked marks activityID inactive and closes its open interval if
// the index has one. A missing entry is tolerated. The caller holds e.mu.
func (e *Engine) deactivateLocked(activityID string, now time.Time) Change {
	if err := e.activities.SetActive(activityID, false); err != nil {
		e.logger.Warn("closing interval of unknown activity", "activity", activityID, "error", err)
	}
	intervalID, ok := e.active.get(activityID)
	if !ok {
		e.logger.Warn("activity was active without an open interval",
			"activity", activityID, "error", ErrInvalidState)
		return Change{Kind: ActivityDeactivated, ActivityID: activityID, At: now}
	}
	e.active.remove(activityID)
	if _, err := e.intervals.stop(intervalID, now); err != nil {
		e.logger.Warn("indexed interval missing from store",
			"activity", activityID, "interval", intervalID, "error", err)
	}
	return Change{Kind: IntervalStopped, ActivityID: activityID, IntervalID: intervalID, At: now}
}

// DeleteInterval removes an interval. Deleting the open interval of an
// activity first deactivates that activity, exactly as Toggle would.
func (e *Engine) DeleteInterval(id string) error {
	e.mu.Lock()
	iv, err := e.intervals.Get(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	now := e.clock()
	var changes []Change
	if iv.ActivityID != "" {
		if openID, ok := e.active.get(iv.ActivityID); ok && openID == iv.ID {
			changes = append(changes, e.deactivateLocked(iv.ActivityID, now))
		}
	}
	if err := e.intervals.Remove(id); err != nil {
		e.mu.Unlock()
		return err
	}
	changes = append(changes, Change{Kind: IntervalDeleted, ActivityID: iv.ActivityID, IntervalID: id, At: now})
	e.mu.Unlock()

	e.logger.Debug("interval deleted", "interval", id, "activity", iv.ActivityID)
	e.notify(changes)
	return nil
}

// Activity returns the activity with the given id.
func (e *Engine) Activity(id string) (Activity, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activities.Get(id)
}

// ListActivities returns every activity in registration order.
func (e *Engine) ListActivities() []Activity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activities.List()
}

// Interval returns the interval with the given id.
func (e *Engine) Interval(id string) (Interval, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.intervals.Get(id)
}

// ListSorted returns every interval, most recently started first.
func (e *Engine) ListSorted() []Interval {
	e.mu.RLock()
	all := e.intervals.All()
	e.mu.RUnlock()
	SortByStartDesc(all)
	return all
}

// IntervalsFor returns the activity's intervals, most recently started first.
func (e *Engine) IntervalsFor(activityID string) []Interval {
	e.mu.RLock()
	ivs := e.intervals.ForActivity(activityID)
	e.mu.RUnlock()
	SortByStartDesc(ivs)
	return ivs
}

// OpenInterval returns the activity's in-progress interval, if any.
func (e *Engine) OpenInterval(activityID string) (Interval, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.active.get(activityID)
	if !ok {
		return Interval{}, false
	}
	iv, err := e.intervals.Get(id)
	if err != nil {
		return Interval{}, false
	}
	return iv, true
}

// LatestWindow returns the start and end of the most recently started
// interval of the activity.
func (e *Engine) LatestWindow(activityID string) Window {
	e.mu.RLock()
	ivs := e.intervals.ForActivity(activityID)
	e.mu.RUnlock()

	var latest *Interval
	for i := range ivs {
		if latest == nil || ivs[i].Start.After(latest.Start) {
			latest = &ivs[i]
		}
	}
	if latest == nil {
		return Window{}
	}
	start := latest.Start
	return Window{Start: &start, End: latest.End}
}

// CumulativeDuration sums the elapsed time of every interval the activity
// owns. Open intervals count up to the current instant.
func (e *Engine) CumulativeDuration(activityID string) time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	now := e.clock()
	var total time.Duration
	for _, iv := range e.intervals.ForActivity(activityID) {
		total += iv.Elapsed(now)
	}
	return total
}

// Elapsed returns how long a single interval has run so far.
func (e *Engine) Elapsed(intervalID string) (time.Duration, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	iv, err := e.intervals.Get(intervalID)
	if err != nil {
		return 0, err
	}
	return iv.Elapsed(e.clock()), nil
}

// Now returns the engine clock's current instant.
func (e *Engine) Now() time.Time {
	return e.clock()
}
