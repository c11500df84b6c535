package query

import (
	"strings"

	"taskmate/pkg/task"
)

// Filter selects one of the six mutually exclusive task views. A
// priority filter replaces any completion filter and vice versa; the
// two kinds are deliberately not composable.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
)

// Filters lists every filter in display order
var Filters = []Filter{
	FilterAll,
	FilterCompleted,
	FilterPending,
	FilterHigh,
	FilterMedium,
	FilterLow,
}

func (f Filter) matches(t task.Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	case FilterHigh, FilterMedium, FilterLow:
		return t.Priority == task.Priority(f)
	default:
		return true
	}
}

// Visible applies the active filter and then the settled search term to
// the snapshot. The search matches a case-insensitive substring of
// title or description. Order is preserved from the input; this is a
// pure function with no hidden state.
func Visible(tasks []task.Task, filter Filter, term string) []task.Task {
	needle := strings.ToLower(term)

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !filter.matches(t) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Counts holds the size of each filter bucket, always computed over the
// full collection so badges stay stable while a filter is active
type Counts struct {
	All       int
	Completed int
	Pending   int
	High      int
	Medium    int
	Low       int
}

// Count tallies every bucket in one pass over the snapshot
func Count(tasks []task.Task) Counts {
	var c Counts
	for _, t := range tasks {
		c.All++
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
		switch t.Priority {
		case task.PriorityHigh:
			c.High++
		case task.PriorityMedium:
			c.Medium++
		case task.PriorityLow:
			c.Low++
		}
	}
	return c
}

// For returns the count for a single filter bucket
func (c Counts) For(f Filter) int {
	switch f {
	case FilterCompleted:
		return c.Completed
	case FilterPending:
		return c.Pending
	case FilterHigh:
		return c.High
	case FilterMedium:
		return c.Medium
	case FilterLow:
		return c.Low
	default:
		return c.All
	}
}
