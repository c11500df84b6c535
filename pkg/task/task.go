package task

import (
	"time"
)

// Priority represents how urgent a task is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the three known levels
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single tracked task
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft holds the fields collected by a form before a task exists.
// The form boundary guarantees the fields are non-empty; the store
// performs no validation of its own.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     time.Time
}

// Patch carries the fields an update may change. Nil fields are left
// untouched; ID and CreatedAt can never change.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *time.Time
}

func (p Patch) apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}
