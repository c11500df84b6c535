package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	storage, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestStorage_GetAbsentKey(t *testing.T) {
	storage := openTestStorage(t)

	value, ok, err := storage.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStorage_SetGetRoundtrip(t *testing.T) {
	storage := openTestStorage(t)

	require.NoError(t, storage.Set("greeting", "hello"))

	value, ok, err := storage.Get("greeting")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", value)
}

func TestStorage_SetReplacesValue(t *testing.T) {
	storage := openTestStorage(t)

	require.NoError(t, storage.Set("k", "first"))
	require.NoError(t, storage.Set("k", "second"))

	value, _, err := storage.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestStorage_Delete(t *testing.T) {
	storage := openTestStorage(t)

	require.NoError(t, storage.Set("k", "v"))
	require.NoError(t, storage.Delete("k"))

	_, ok, err := storage.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is fine
	require.NoError(t, storage.Delete("k"))
}

func TestStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	storage, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, storage.Set("k", "v"))
	require.NoError(t, storage.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestSession_StartsLoggedOut(t *testing.T) {
	sess := New(openTestStorage(t))

	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Email())
}

func TestSession_Login(t *testing.T) {
	sess := New(openTestStorage(t))

	require.NoError(t, sess.Login("user@example.com"))

	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "user@example.com", sess.Email())
}

func TestSession_LoginTrimsAndRequiresEmail(t *testing.T) {
	sess := New(openTestStorage(t))

	assert.Error(t, sess.Login("   "))
	assert.False(t, sess.LoggedIn())

	require.NoError(t, sess.Login("  user@example.com  "))
	assert.Equal(t, "user@example.com", sess.Email())
}

func TestSession_ResumeRestoresIdentity(t *testing.T) {
	storage := openTestStorage(t)

	first := New(storage)
	require.NoError(t, first.Login("user@example.com"))

	second := New(storage)
	assert.True(t, second.Resume())
	assert.Equal(t, "user@example.com", second.Email())
}

func TestSession_ResumeWithNothingPersisted(t *testing.T) {
	sess := New(openTestStorage(t))

	assert.False(t, sess.Resume())
	assert.False(t, sess.LoggedIn())
}

func TestSession_ResumeIgnoresMalformedIdentity(t *testing.T) {
	storage := openTestStorage(t)
	require.NoError(t, storage.Set(KeyUserSession, "{broken"))

	sess := New(storage)
	assert.False(t, sess.Resume())

	require.NoError(t, storage.Set(KeyUserSession, `{"email":""}`))
	assert.False(t, sess.Resume())
}

func TestSession_LogoutClearsEverything(t *testing.T) {
	storage := openTestStorage(t)
	sess := New(storage)
	require.NoError(t, sess.Login("user@example.com"))

	// Simulate a session with tasks and a notification record
	require.NoError(t, storage.Set(KeyTasks, `[{"id":1}]`))
	require.NoError(t, storage.Set(KeyLastNotification, "2026-07-01T12:00:00Z"))

	require.NoError(t, sess.Logout())

	assert.False(t, sess.LoggedIn())
	for _, key := range []string{KeyUserSession, KeyTasks, KeyLastNotification} {
		_, ok, err := storage.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be gone", key)
	}
}
