package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"taskmate/pkg/query"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	titleBarStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1)

	switch m.mode {
	case LoginMode:
		sb.WriteString(titleBarStyle.Render(" Taskmate - Sign In "))
		sb.WriteString("\n\n")
		sb.WriteString("Enter your email to start the session:")
		sb.WriteString("\n\n")
		sb.WriteString(m.emailInput.View())

		if m.formErr != "" {
			sb.WriteString("\n\n")
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.styles.ErrorColor)).
				Render(m.formErr))
		}

	case NormalMode, SearchMode:
		sb.WriteString(titleBarStyle.Render(" Taskmate - Task List "))
		sb.WriteString("\n\n")

		// Filter badges with counts over the full collection
		sb.WriteString(m.renderFilterBadges())
		sb.WriteString("\n\n")

		if m.mode == SearchMode {
			sb.WriteString("Search: ")
			sb.WriteString(m.searchInput.View())
			sb.WriteString("\n")
		}

		// Table with tasks
		sb.WriteString(m.table.View())
		sb.WriteString("\n")

		// Display active filter and search term
		viewInfo := fmt.Sprintf("Showing %s tasks", m.filter)
		if m.searchTerm != "" {
			viewInfo += fmt.Sprintf(" (search filter: %s)", m.searchTerm)
		}
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render(viewInfo))
		sb.WriteString("\n")

		// Session and reminder status
		statusInfo := fmt.Sprintf("%s | %s", m.sess.Email(), m.scheduler.TimeUntilNext())
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.BorderColor)).
			Render(statusInfo))
		sb.WriteString("\n")

	case AddMode:
		sb.WriteString(titleBarStyle.Render(" Add New Task "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(titleBarStyle.Render(" Edit Task "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
			Background(lipgloss.Color(m.styles.ErrorColor)).
			Padding(0, 1).
			Render(" Delete Task "))
		sb.WriteString("\n\n")

		if m.deleting != nil {
			sb.WriteString("Are you sure you want to delete this task?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", m.deleting.Title))
			sb.WriteString(fmt.Sprintf("Description: %s\n", m.deleting.Description))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}

	case HelpViewMode:
		// Fullscreen commands view
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
		sb.WriteString("\n\n")

		keyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.AccentColor)).
			Bold(true)
		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor))

		addCommand := func(binding key.Binding) {
			sb.WriteString(fmt.Sprintf("%s: %s\n",
				descStyle.Render(binding.Help().Desc),
				keyStyle.Render(binding.Help().Key)))
		}

		addCommand(m.keyMap.QuitApp)
		addCommand(m.keyMap.ShowHelp)
		addCommand(m.keyMap.ToggleStatus)
		addCommand(m.keyMap.AddTask)
		addCommand(m.keyMap.EditTask)
		addCommand(m.keyMap.DeleteTask)
		addCommand(m.keyMap.SearchTasks)
		addCommand(m.keyMap.NextFilter)
		addCommand(m.keyMap.PrevFilter)
		addCommand(m.keyMap.Logout)
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", m.err))
	}

	// Add help status bar at the bottom
	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

// renderFilterBadges renders the six filter buckets with their counts;
// the active one is highlighted
func (m Model) renderFilterBadges() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.SelectedBgColor)).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor)).
		Padding(0, 1)

	var badges []string
	for _, f := range query.Filters {
		label := fmt.Sprintf("%s %d", f, m.counts.For(f))
		if f == m.filter {
			badges = append(badges, activeStyle.Render(label))
		} else {
			badges = append(badges, inactiveStyle.Render(label))
		}
	}
	return strings.Join(badges, " ")
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}

	switch m.mode {
	case LoginMode:
		addAction("enter", "sign in")
		addAction("ctrl+c", "quit")

	case NormalMode:
		addAction("a", "add")
		addAction("e", "edit")
		addAction("d", "del")
		addAction("space", "toggle")
		addAction("tab", "filter")
		addAction("ctrl+f", "search")
		addAction("ctrl+l", "logout")
		addAction("ctrl+b", "help")
		addAction("q", "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		addAction("enter", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case SearchMode:
		addAction("enter", "keep term")
		addAction("esc", "clear")

	case HelpViewMode:
		addAction("ctrl+b/esc", "back")
		addAction("q", "quit")
	}

	return strings.Join(actions, separator)
}

// renderForm renders the input form for adding/editing tasks
func (m Model) renderForm() string {
	var sb strings.Builder

	// Title input
	sb.WriteString("Title:\n")
	sb.WriteString(m.titleInput.View())
	sb.WriteString("\n\n")

	// Description input
	sb.WriteString("Description:\n")
	sb.WriteString(m.descInput.View())
	sb.WriteString("\n\n")

	// Priority input
	sb.WriteString("Priority (low, medium, high):\n")
	sb.WriteString(m.priorityInput.View())
	sb.WriteString("\n\n")

	// Due date input
	sb.WriteString("Due Date (YYYY-MM-DD):\n")
	sb.WriteString(m.dueDateInput.View())

	if m.formErr != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(m.formErr))
	}

	return sb.String()
}
