// Package tracker holds the activity and interval model and the engine that
// keeps them consistent: toggling activities, deleting intervals and
// aggregating elapsed time.
package tracker

import (
	"sort"
	"strings"
	"time"
)

// DefaultIcon is used when an activity is registered without an icon token.
const DefaultIcon = "record.circle"

// Activity is a user-defined category that time can be attributed to.
type Activity struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"` // opaque token, never interpreted here
	Active bool   `json:"active" yaml:"active"`
	Icon   string `json:"icon" yaml:"icon"`
}

// Interval is a recorded span of time attributed to one activity.
type Interval struct {
	ID    string     `json:"id" yaml:"id"`
	Start time.Time  `json:"start" yaml:"start"`
	End   *time.Time `json:"end,omitempty" yaml:"end,omitempty"` // nil while in progress
	// ActivityID is empty for orphaned intervals.
	ActivityID string `json:"activity_id,omitempty" yaml:"activity_id,omitempty"`
}

// IsOpen reports whether the interval is still in progress.
func (iv Interval) IsOpen() bool {
	return iv.End == nil
}

// Stop sets the end instant. It returns false, leaving the interval
// untouched, when the interval was already stopped.
func (iv *Interval) Stop(at time.Time) bool {
	if iv.End != nil {
		return false
	}
	iv.End = &at
	return true
}

// Elapsed returns End-Start, using now for open intervals.
func (iv Interval) Elapsed(now time.Time) time.Duration {
	if iv.End != nil {
		return iv.End.Sub(iv.Start)
	}
	return now.Sub(iv.Start)
}

// Window describes the most recently started interval of an activity.
// Both fields are nil when the activity has no intervals.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// SortByStartDesc orders intervals most recent first.
func SortByStartDesc(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.After(intervals[j].Start)
	})
}

// SortByName orders activities lexicographically by name, falling back to id.
func SortByName(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		a, b := strings.ToLower(activities[i].Name), strings.ToLower(activities[j].Name)
		if a != b {
			return a < b
		}
		return activities[i].ID < activities[j].ID
	})
}
