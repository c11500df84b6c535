package session

import (
	"encoding/json"
	"errors"
	"strings"

	"taskmate/pkg/utils"
)

// Identity is the logged-in user, as persisted under the userSession key
type Identity struct {
	Email string `json:"email"`
}

// Session owns the storage handle and the current identity. It is
// created at startup and passed to every component that needs either;
// no component reads ambient global state.
type Session struct {
	storage  *Storage
	identity *Identity
}

// New wraps an open storage handle in a session with no identity yet
func New(storage *Storage) *Session {
	return &Session{storage: storage}
}

// Resume restores the identity from a previous session if one was
// persisted. Returns true when the user is logged in afterwards.
// A malformed persisted identity is treated as absent.
func (s *Session) Resume() bool {
	raw, ok, err := s.storage.Get(KeyUserSession)
	if err != nil {
		utils.Log("Error reading user session: %v", err)
		return false
	}
	if !ok {
		return false
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil || id.Email == "" {
		utils.Log("Ignoring malformed user session")
		return false
	}
	s.identity = &id
	utils.Log("Resumed session for %s", id.Email)
	return true
}

// Login records the identity and persists it for the session lifetime.
// The email is accepted as given; there is no credential check.
func (s *Session) Login(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	id := Identity{Email: email}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := s.storage.Set(KeyUserSession, string(data)); err != nil {
		return err
	}
	s.identity = &id
	utils.Log("Logged in as %s", email)
	return nil
}

// Logout tears the session down: identity, task list and notification
// timestamp are all removed from storage
func (s *Session) Logout() error {
	s.identity = nil
	for _, key := range []string{KeyUserSession, KeyTasks, KeyLastNotification} {
		if err := s.storage.Delete(key); err != nil {
			return err
		}
	}
	utils.Log("Logged out, session cleared")
	return nil
}

// LoggedIn reports whether an identity is present
func (s *Session) LoggedIn() bool {
	return s.identity != nil
}

// Email returns the logged-in email, or an empty string
func (s *Session) Email() string {
	if s.identity == nil {
		return ""
	}
	return s.identity.Email
}

// Storage exposes the underlying key/value store
func (s *Session) Storage() *Storage {
	return s.storage
}
