package notify

import (
	"fmt"
	"strings"
	"time"

	"taskmate/pkg/task"
)

// LookaheadDays is how far past today the upcoming bucket reaches
const LookaheadDays = 3

// Digest is the result of one classification pass over the task list
type Digest struct {
	TotalPending int
	Overdue      []task.Task
	DueToday     []task.Task
	Upcoming     []task.Task

	// Priority breakdown across all pending tasks, independent of the
	// date buckets
	High   int
	Medium int
	Low    int
}

// startOfDay normalizes t to midnight in its own location
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Classify partitions pending tasks into overdue, due-today and
// upcoming buckets relative to now. Due dates compare at day
// granularity. A pending task due beyond the lookahead window lands in
// no bucket but still counts toward TotalPending.
func Classify(tasks []task.Task, now time.Time) Digest {
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, LookaheadDays)

	var d Digest
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		d.TotalPending++

		switch t.Priority {
		case task.PriorityHigh:
			d.High++
		case task.PriorityMedium:
			d.Medium++
		case task.PriorityLow:
			d.Low++
		}

		due := startOfDay(t.DueDate)
		switch {
		case due.Before(today):
			d.Overdue = append(d.Overdue, t)
		case due.Equal(today):
			d.DueToday = append(d.DueToday, t)
		case !due.After(horizon):
			d.Upcoming = append(d.Upcoming, t)
		}
	}
	return d
}

// Subject returns the reminder subject line
func (d Digest) Subject() string {
	return fmt.Sprintf("Task Reminder - You have %d pending task(s)", d.TotalPending)
}

// Body renders the plain-text reminder. With nothing pending it is a
// short acknowledgment; otherwise a structured summary with the task
// lists and the priority breakdown.
func (d Digest) Body() string {
	if d.TotalPending == 0 {
		return "Great job! You have no pending tasks."
	}

	var b strings.Builder
	b.WriteString("Task Reminder\n\n")
	b.WriteString("TASK SUMMARY:\n")
	fmt.Fprintf(&b, "Total Pending: %d\n", d.TotalPending)
	fmt.Fprintf(&b, "Overdue: %d\n", len(d.Overdue))
	fmt.Fprintf(&b, "Due Today: %d\n", len(d.DueToday))
	fmt.Fprintf(&b, "Upcoming (%d days): %d\n\n", LookaheadDays, len(d.Upcoming))

	writeSection(&b, "OVERDUE TASKS:", d.Overdue, true)
	writeSection(&b, "DUE TODAY:", d.DueToday, false)
	writeSection(&b, fmt.Sprintf("UPCOMING (Next %d Days):", LookaheadDays), d.Upcoming, true)

	b.WriteString("PRIORITY BREAKDOWN:\n")
	fmt.Fprintf(&b, "High: %d\n", d.High)
	fmt.Fprintf(&b, "Medium: %d\n", d.Medium)
	fmt.Fprintf(&b, "Low: %d\n\n", d.Low)
	b.WriteString("Stay organized and complete your tasks on time!")
	return b.String()
}

func writeSection(b *strings.Builder, header string, tasks []task.Task, withDue bool) {
	if len(tasks) == 0 {
		return
	}
	b.WriteString(header + "\n")
	for i, t := range tasks {
		fmt.Fprintf(b, "%d. [%s] %s\n", i+1, strings.ToUpper(string(t.Priority)), t.Title)
		if withDue {
			fmt.Fprintf(b, "   Due: %s\n", t.DueDate.Format("2006-01-02"))
		}
	}
	b.WriteString("\n")
}
