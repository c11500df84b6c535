package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"taskmate/pkg/query"
	"taskmate/pkg/task"
)

// reloadTasks recomputes the visible list and badge counts from a fresh
// store snapshot and the current filter plus settled search term
func (m *Model) reloadTasks() {
	snapshot := m.store.Snapshot()
	m.counts = query.Count(snapshot)
	m.visible = query.Visible(snapshot, m.filter, m.searchTerm)

	tableRows := []table.Row{}
	for _, t := range m.visible {
		tableRows = append(tableRows, table.Row{m.renderTaskRow(t)})
	}
	m.table.SetRows(tableRows)

	if m.table.Cursor() >= len(tableRows) && len(tableRows) > 0 {
		m.table.SetCursor(len(tableRows) - 1)
	}
}

// renderTaskRow formats a single task line: status box, priority tag,
// title and due date
func (m *Model) renderTaskRow(t task.Task) string {
	status := "[ ]"
	if t.Completed {
		status = "[x]"
	}

	tag := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.priorityColor(t.Priority))).
		Render(fmt.Sprintf("[%s]", strings.ToUpper(string(t.Priority))))

	title := t.Title
	if t.Completed {
		title = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.CompletedColor)).
			Strikethrough(true).
			Render(title)
	}

	return fmt.Sprintf("%s %s %s  (due %s)", status, tag, title, t.DueDate.Format("2006-01-02"))
}

func (m *Model) priorityColor(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return m.styles.HighPriorityColor
	case task.PriorityMedium:
		return m.styles.MediumPriorityColor
	default:
		return m.styles.LowPriorityColor
	}
}

// selectedTask returns the task under the table cursor
func (m *Model) selectedTask() (task.Task, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[idx], true
}

// focusNextInput cycles through the form inputs
func (m *Model) focusNextInput() {
	m.activeInput = (m.activeInput + 1) % 4
	m.applyInputFocus()
}

// focusPreviousInput cycles through the form inputs
func (m *Model) focusPreviousInput() {
	m.activeInput = (m.activeInput + 3) % 4
	m.applyInputFocus()
}

func (m *Model) applyInputFocus() {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.priorityInput.Blur()
	m.dueDateInput.Blur()

	switch m.activeInput {
	case 0:
		m.titleInput.Focus()
	case 1:
		m.descInput.Focus()
	case 2:
		m.priorityInput.Focus()
	case 3:
		m.dueDateInput.Focus()
	}
}

// resetInputs clears all form inputs
func (m *Model) resetInputs() {
	m.titleInput.Reset()
	m.descInput.Reset()
	m.priorityInput.SetValue(string(task.PriorityMedium))
	m.dueDateInput.SetValue(time.Now().Format("2006-01-02"))
	m.formErr = ""

	m.activeInput = 0
	m.titleInput.Focus()
	m.descInput.Blur()
	m.priorityInput.Blur()
	m.dueDateInput.Blur()
}

// submitForm validates the form and applies it through the store. The
// store itself performs no validation; every rejection happens here at
// the form boundary, as field-level messages.
func (m *Model) submitForm() {
	title := strings.TrimSpace(m.titleInput.Value())
	desc := strings.TrimSpace(m.descInput.Value())
	priorityStr := strings.ToLower(strings.TrimSpace(m.priorityInput.Value()))
	dueDate := strings.TrimSpace(m.dueDateInput.Value())

	if title == "" {
		m.formErr = "Title is required"
		return
	}
	if desc == "" {
		m.formErr = "Description is required"
		return
	}
	priority := task.Priority(priorityStr)
	if !task.ValidPriority(priority) {
		m.formErr = "Priority must be low, medium or high"
		return
	}
	if dueDate == "" {
		m.formErr = "Due date is required"
		return
	}
	parsedDueDate, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		m.formErr = "Invalid date format: use YYYY-MM-DD"
		return
	}

	switch m.mode {
	case AddMode:
		m.store.Create(task.Draft{
			Title:       title,
			Description: desc,
			Priority:    priority,
			DueDate:     parsedDueDate,
		})

	case EditMode:
		m.store.Update(m.editingID, task.Patch{
			Title:       &title,
			Description: &desc,
			Priority:    &priority,
			DueDate:     &parsedDueDate,
		})
	}

	// Reset state
	m.mode = NormalMode
	m.resetInputs()
	m.editingID = 0
	m.reloadTasks()
}
