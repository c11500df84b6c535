package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskmate/pkg/query"
	"taskmate/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case searchSettledMsg:
		// The typed term has been quiet long enough; apply it
		m.searchTerm = string(msg)
		m.reloadTasks()
		return m, waitForSearch(m.search)

	case clockTickMsg:
		// Only the status bar changes; re-arm the tick
		return m, clockTick()

	case tea.KeyMsg:
		switch m.mode {
		case LoginMode:
			switch msg.String() {
			case "ctrl+c":
				m.search.Stop()
				return m, tea.Quit

			case "enter":
				email := strings.TrimSpace(m.emailInput.Value())
				if email == "" || !strings.Contains(email, "@") {
					m.formErr = "Please enter a valid email address"
					return m, nil
				}
				if err := m.sess.Login(email); err != nil {
					m.err = err
					return m, nil
				}
				m.formErr = ""
				m.mode = NormalMode
				m.reloadTasks()
				// Arm the reminder cadence; this also runs the
				// immediate evaluation pass
				m.scheduler.Activate()
				return m, nil
			}

			m.emailInput, cmd = m.emailInput.Update(msg)
			cmds = append(cmds, cmd)

		case NormalMode:
			switch {
			case key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = HelpViewMode

			case key.Matches(msg, m.keyMap.QuitApp):
				// Release the debounce timer before the program exits
				m.search.Stop()
				return m, tea.Quit

			case key.Matches(msg, m.keyMap.ToggleStatus):
				if t, ok := m.selectedTask(); ok {
					m.store.ToggleComplete(t.ID)
					m.reloadTasks()
				}

			case key.Matches(msg, m.keyMap.AddTask):
				m.mode = AddMode
				m.resetInputs()

			case key.Matches(msg, m.keyMap.EditTask):
				if t, ok := m.selectedTask(); ok {
					m.mode = EditMode
					m.editingID = t.ID
					m.resetInputs()

					// Populate form with existing values
					m.titleInput.SetValue(t.Title)
					m.descInput.SetValue(t.Description)
					m.priorityInput.SetValue(string(t.Priority))
					m.dueDateInput.SetValue(t.DueDate.Format("2006-01-02"))
				}

			case key.Matches(msg, m.keyMap.DeleteTask):
				if t, ok := m.selectedTask(); ok {
					// Delete never happens straight off the keypress;
					// the confirm screen stands between
					sel := t
					m.deleting = &sel
					m.mode = DeleteConfirmMode
				}

			case key.Matches(msg, m.keyMap.SearchTasks):
				m.mode = SearchMode
				m.searchInput.Focus()
				m.searchInput.SetValue(m.searchTerm)
				return m, nil

			case key.Matches(msg, m.keyMap.NextFilter):
				m.filter = nextFilter(m.filter, 1)
				m.reloadTasks()

			case key.Matches(msg, m.keyMap.PrevFilter):
				m.filter = nextFilter(m.filter, -1)
				m.reloadTasks()

			case key.Matches(msg, m.keyMap.Logout):
				// Disarm reminders first so no pass can land between
				// the session being cleared and the timer going away
				m.scheduler.Deactivate()
				if err := m.sess.Logout(); err != nil {
					m.err = err
					break
				}
				m.store.Reset()
				m.filter = query.FilterAll
				m.searchTerm = ""
				m.emailInput.Reset()
				m.emailInput.Focus()
				m.mode = LoginMode
				m.reloadTasks()

			case msg.String() == "/":
				m.mode = SearchMode
				m.searchInput.Focus()
				m.searchInput.SetValue(m.searchTerm)
				return m, nil
			}

		case AddMode, EditMode:
			switch msg.String() {
			case "esc":
				m.mode = NormalMode
				m.resetInputs()
				m.editingID = 0

			case "tab":
				m.focusNextInput()

			case "shift+tab":
				m.focusPreviousInput()

			case "enter":
				if m.activeInput == 3 { // Submit on enter from the last field (due date)
					m.submitForm()
				} else {
					m.focusNextInput()
				}
			}

			// Handle input updates
			switch m.activeInput {
			case 0:
				m.titleInput, cmd = m.titleInput.Update(msg)
				cmds = append(cmds, cmd)
			case 1:
				m.descInput, cmd = m.descInput.Update(msg)
				cmds = append(cmds, cmd)
			case 2:
				m.priorityInput, cmd = m.priorityInput.Update(msg)
				cmds = append(cmds, cmd)
			case 3:
				m.dueDateInput, cmd = m.dueDateInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case SearchMode:
			switch msg.String() {
			case "esc":
				// Exit search mode and drop the term
				m.mode = NormalMode
				m.searchInput.Reset()
				m.search.Set("")
				m.searchTerm = ""
				m.reloadTasks()
				return m, nil

			case "enter":
				// Keep the current term and return to the list
				m.mode = NormalMode
				return m, nil
			}

			// Every keystroke feeds the debouncer; the list only
			// refreshes once the term settles
			m.searchInput, cmd = m.searchInput.Update(msg)
			cmds = append(cmds, cmd)
			m.search.Set(m.searchInput.Value())

		case DeleteConfirmMode:
			// Handle delete confirmation
			switch msg.String() {
			case "y", "Y":
				if m.deleting != nil {
					utils.Log("Deleting task ID: %d", m.deleting.ID)
					m.store.Delete(m.deleting.ID)
					m.reloadTasks()
				}
				m.mode = NormalMode
				m.deleting = nil

			case "n", "N", "esc":
				m.mode = NormalMode
				m.deleting = nil
			}

		case HelpViewMode:
			switch msg.String() {
			case "esc", "ctrl+b":
				m.mode = NormalMode
			case "q":
				m.search.Stop()
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(msg.Height - 8)
	}

	// Only update table in normal mode
	if m.mode == NormalMode {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// nextFilter steps through the six filter buckets in display order
func nextFilter(f query.Filter, step int) query.Filter {
	idx := 0
	for i, candidate := range query.Filters {
		if candidate == f {
			idx = i
			break
		}
	}
	idx = (idx + step + len(query.Filters)) % len(query.Filters)
	return query.Filters[idx]
}
