package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmate/pkg/config"
	"taskmate/pkg/debounce"
	"taskmate/pkg/keymaps"
	"taskmate/pkg/notify"
	"taskmate/pkg/query"
	"taskmate/pkg/session"
	"taskmate/pkg/task"
)

// InputMode represents the current input mode
type InputMode int

const (
	LoginMode InputMode = iota
	NormalMode
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode   // Mode for searching tasks
	HelpViewMode // Mode for displaying help
)

// searchDelay is the quiet period before a typed search term takes effect
const searchDelay = 300 * time.Millisecond

// searchSettledMsg carries a search term once it has stopped changing
type searchSettledMsg string

// clockTickMsg refreshes the reminder countdown once a second
type clockTickMsg time.Time

// Model represents the application state
type Model struct {
	table         table.Model
	visible       []task.Task
	counts        query.Counts
	width, height int
	err           error

	// Configuration
	cfg    config.Config
	styles config.Styles
	keyMap keymaps.KeyMap

	// Collaborators
	sess      *session.Session
	store     *task.Store
	scheduler *notify.Scheduler

	// View state
	filter     query.Filter
	searchTerm string
	search     *debounce.Debouncer[string]

	// Form state
	mode          InputMode
	titleInput    textinput.Model
	descInput     textinput.Model
	priorityInput textinput.Model
	dueDateInput  textinput.Model
	searchInput   textinput.Model
	emailInput    textinput.Model
	activeInput   int
	formErr       string

	// Edit/delete state
	editingID int64
	deleting  *task.Task
}

// NewModel creates the UI model. When the session already carries an
// identity (resumed by main) the dashboard shows right away; otherwise
// the login screen asks for an email first.
func NewModel(store *task.Store, sess *session.Session, scheduler *notify.Scheduler, cfg config.Config, styles config.Styles) Model {
	// Single column, no header; rows carry their own formatting
	columns := []table.Column{
		{Title: "", Width: 70},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Bold(false).
		Foreground(lipgloss.NoColor{})
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	// Initialize text inputs
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.Focus()
	titleInput.Width = 40

	descInput := textinput.New()
	descInput.Placeholder = "Description"
	descInput.Width = 40

	priorityInput := textinput.New()
	priorityInput.Placeholder = "Priority (low, medium, high)"
	priorityInput.Width = 40
	priorityInput.SetValue(string(task.PriorityMedium))

	dueDateInput := textinput.New()
	dueDateInput.Placeholder = "Due Date (YYYY-MM-DD)"
	dueDateInput.Width = 40
	dueDateInput.SetValue(time.Now().Format("2006-01-02"))

	searchInput := textinput.New()
	searchInput.Placeholder = "Search tasks by title or description"
	searchInput.Width = 40

	emailInput := textinput.New()
	emailInput.Placeholder = "Email address"
	emailInput.Focus()
	emailInput.Width = 40

	mode := LoginMode
	if sess.LoggedIn() {
		mode = NormalMode
	}

	m := Model{
		table:         t,
		cfg:           cfg,
		styles:        styles,
		keyMap:        keymaps.BuildKeyMap(cfg.KeyMap),
		sess:          sess,
		store:         store,
		scheduler:     scheduler,
		filter:        query.FilterAll,
		search:        debounce.New("", searchDelay),
		mode:          mode,
		titleInput:    titleInput,
		descInput:     descInput,
		priorityInput: priorityInput,
		dueDateInput:  dueDateInput,
		searchInput:   searchInput,
		emailInput:    emailInput,
		activeInput:   0,
	}

	// Load initial data
	m.reloadTasks()

	return m
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForSearch(m.search),
		clockTick(),
	)
}

// waitForSearch blocks on the debouncer until the next settled term.
// A closed channel means the debouncer was stopped; the reader exits
// instead of spinning on zero values.
func waitForSearch(d *debounce.Debouncer[string]) tea.Cmd {
	return func() tea.Msg {
		term, ok := <-d.Settled()
		if !ok {
			return nil
		}
		return searchSettledMsg(term)
	}
}

// clockTick drives the once-a-second countdown refresh in the status bar
func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
