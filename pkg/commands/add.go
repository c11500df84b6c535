package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"taskmate/pkg/task"
)

// HandleAddTask processes the --add command
func HandleAddTask(store *task.Store, taskText, dateStr, priorityStr string) {
	// Parse due date
	var dueDate time.Time
	var err error

	if dateStr != "" {
		dueDate, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Printf("Error parsing date: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Default to today
		dueDate = time.Now()
	}

	priority := task.Priority(strings.ToLower(strings.TrimSpace(priorityStr)))
	if !task.ValidPriority(priority) {
		fmt.Printf("Unknown priority: %s (use low, medium or high)\n", priorityStr)
		os.Exit(1)
	}

	taskText = strings.TrimSpace(taskText)
	if taskText == "" {
		fmt.Println("Task title must not be empty")
		os.Exit(1)
	}

	created := store.Create(task.Draft{
		Title:       taskText,
		Description: taskText, // quick-add has no separate description
		Priority:    priority,
		DueDate:     dueDate,
	})

	fmt.Printf("Added task %d: %s\n", created.ID, created.Title)
}
