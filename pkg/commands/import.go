package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"taskmate/pkg/task"
)

// HandleImportCommand processes --import commands. The file must hold a
// JSON array in the export format; imported tasks get fresh ids and are
// prepended like any other create.
func HandleImportCommand(store *task.Store, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	var tasks []task.Task
	if err := json.Unmarshal(content, &tasks); err != nil {
		fmt.Printf("Error parsing file: %v\n", err)
		os.Exit(1)
	}

	var tasksAdded int
	for _, t := range tasks {
		if t.Title == "" {
			continue
		}
		priority := t.Priority
		if !task.ValidPriority(priority) {
			priority = task.PriorityMedium
		}

		created := store.Create(task.Draft{
			Title:       t.Title,
			Description: t.Description,
			Priority:    priority,
			DueDate:     t.DueDate,
		})
		if t.Completed {
			store.ToggleComplete(created.ID)
		}
		tasksAdded++
	}

	fmt.Printf("Successfully imported %d task(s) from %s\n", tasksAdded, filename)
}
