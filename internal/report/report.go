// Package report summarises tracked time for export and display.
package report

import (
	"time"

	"github.com/fakeyudi/timetrack/internal/duration"
	"github.com/fakeyudi/timetrack/internal/tracker"
)

// Source is the read side of a tracker.Engine.
type Source interface {
	ListActivities() []tracker.Activity
	ListSorted() []tracker.Interval
	LatestWindow(activityID string) tracker.Window
	CumulativeDuration(activityID string) time.Duration
	Now() time.Time
}

// Report is the complete, renderable summary of tracked time.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Activities  []ActivitySummary `json:"activities" yaml:"activities"`
	Intervals   []IntervalEntry   `json:"intervals" yaml:"intervals"`
	ShowSeconds bool              `json:"-" yaml:"-"`
}

// ActivitySummary aggregates one activity's intervals.
type ActivitySummary struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Color          string     `json:"color,omitempty" yaml:"color,omitempty"`
	Icon           string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Active         bool       `json:"active" yaml:"active"`
	TotalSeconds   int64      `json:"total_seconds" yaml:"total_seconds"`
	Total          string     `json:"total" yaml:"total"` // formatted, e.g. "01:30"
	CurrentSeconds int64      `json:"current_seconds,omitempty" yaml:"current_seconds,omitempty"`
	LatestStart    *time.Time `json:"latest_start,omitempty" yaml:"latest_start,omitempty"`
	LatestEnd      *time.Time `json:"latest_end,omitempty" yaml:"latest_end,omitempty"`
	IntervalCount  int        `json:"interval_count" yaml:"interval_count"`
}

// IntervalEntry is one interval with its owner resolved.
type IntervalEntry struct {
	ID             string     `json:"id" yaml:"id"`
	ActivityID     string     `json:"activity_id,omitempty" yaml:"activity_id,omitempty"`
	Activity       string     `json:"activity" yaml:"activity"`
	Start          time.Time  `json:"start" yaml:"start"`
	End            *time.Time `json:"end,omitempty" yaml:"end,omitempty"`
	ElapsedSeconds int64      `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// Orphaned labels intervals whose activity is unknown.
const Orphaned = "(orphaned)"

// Build summarises src as of its current clock reading. Activities are
// sorted by name and intervals most recent first.
func Build(src Source, showSeconds bool) *Report {
	now := src.Now()
	activities := src.ListActivities()
	tracker.SortByName(activities)
	intervals := src.ListSorted()

	names := make(map[string]string, len(activities))
	counts := make(map[string]int, len(activities))
	current := make(map[string]time.Duration)
	for _, a := range activities {
		names[a.ID] = a.Name
	}

	r := &Report{
		GeneratedAt: now,
		Activities:  make([]ActivitySummary, 0, len(activities)),
		Intervals:   make([]IntervalEntry, 0, len(intervals)),
		ShowSeconds: showSeconds,
	}
	for _, iv := range intervals {
		counts[iv.ActivityID]++
		elapsed := iv.Elapsed(now)
		if iv.IsOpen() && iv.ActivityID != "" {
			current[iv.ActivityID] = elapsed
		}
		name, ok := names[iv.ActivityID]
		if !ok {
			name = Orphaned
		}
		r.Intervals = append(r.Intervals, IntervalEntry{
			ID:             iv.ID,
			ActivityID:     iv.ActivityID,
			Activity:       name,
			Start:          iv.Start,
			End:            iv.End,
			ElapsedSeconds: seconds(elapsed),
		})
	}

	for _, a := range activities {
		total := src.CumulativeDuration(a.ID)
		w := src.LatestWindow(a.ID)
		r.Activities = append(r.Activities, ActivitySummary{
			ID:             a.ID,
			Name:           a.Name,
			Color:          a.Color,
			Icon:           a.Icon,
			Active:         a.Active,
			TotalSeconds:   seconds(total),
			Total:          duration.Format(total, showSeconds),
			CurrentSeconds: seconds(current[a.ID]),
			LatestStart:    w.Start,
			LatestEnd:      w.End,
			IntervalCount:  counts[a.ID],
		})
	}
	return r
}

// Window renders the latest window of s.
func (s ActivitySummary) Window() string {
	return duration.Window(s.LatestStart, s.LatestEnd)
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
