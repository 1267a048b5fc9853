package report

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/fakeyudi/timetrack/internal/duration"
)

// table accumulates rows and pads every column to its widest cell, measured
// in terminal cells so wide runes and emoji stay aligned.
type table struct {
	rows [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	var w []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(w) {
				w = append(w, 0)
			}
			if n := runewidth.StringWidth(cell); n > w[i] {
				w[i] = n
			}
		}
	}
	return w
}

func (t *table) String() string {
	w := t.widths()
	var sb strings.Builder
	for _, row := range t.rows {
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, w[i]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ActivityTable renders the activity rows used by `timetrack status`.
func ActivityTable(r *Report) string {
	t := &table{}
	t.add(" ", "ACTIVITY", "LATEST", "CURRENT", "TOTAL")
	for _, a := range r.Activities {
		marker := " "
		current := "-"
		if a.Active {
			marker = "●"
			current = formatSeconds(a.CurrentSeconds, r.ShowSeconds)
		}
		t.add(marker, a.Name, a.Window(), current, a.Total)
	}
	return t.String()
}

// IntervalTable renders intervals most recent first.
func IntervalTable(r *Report) string {
	t := &table{}
	t.add("ID", "ACTIVITY", "WINDOW", "ELAPSED")
	for _, iv := range r.Intervals {
		start := iv.Start
		t.add(iv.ID, iv.Activity, duration.Window(&start, iv.End), formatSeconds(iv.ElapsedSeconds, r.ShowSeconds))
	}
	return t.String()
}
