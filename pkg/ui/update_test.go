package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/pkg/config"
	"taskmate/pkg/notify"
	"taskmate/pkg/session"
	"taskmate/pkg/task"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	storage, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	sess := session.New(storage)
	require.NoError(t, sess.Login("user@example.com"))

	store := task.NewStore(storage)
	scheduler := notify.NewScheduler(store, sess, nil)
	t.Cleanup(scheduler.Deactivate)

	return NewModel(store, sess, scheduler, config.Config{}, config.Styles{})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_HelpViewQuitKey(t *testing.T) {
	m := newTestModel(t)
	m.mode = HelpViewMode

	_, cmd := m.Update(keyRunes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_HelpViewEscReturnsToList(t *testing.T) {
	m := newTestModel(t)
	m.mode = HelpViewMode

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, NormalMode, updated.(Model).mode)
}

func TestUpdate_LogoutTearsDownSchedulerAndSession(t *testing.T) {
	m := newTestModel(t)
	m.scheduler.Activate()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})

	next := updated.(Model)
	assert.Equal(t, LoginMode, next.mode)
	assert.False(t, m.scheduler.Active())
	assert.False(t, m.sess.LoggedIn())

	// Teardown cleared every session key and nothing rewrote them
	for _, key := range []string{session.KeyUserSession, session.KeyTasks, session.KeyLastNotification} {
		_, ok, err := m.sess.Storage().Get(key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be gone", key)
	}
}
