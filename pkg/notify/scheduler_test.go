package notify

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/pkg/session"
	"taskmate/pkg/task"
)

// captureMailer records the last dispatch instead of sending it
type captureMailer struct {
	to      string
	subject string
	body    string
	sends   int
	err     error
}

func (c *captureMailer) Send(to, subject, body string) error {
	c.to = to
	c.subject = subject
	c.body = body
	c.sends++
	return c.err
}

// blockingMailer parks mid-delivery until released, holding an
// evaluation pass in flight
type blockingMailer struct {
	entered chan struct{}
	release chan struct{}
}

func (m *blockingMailer) Send(to, subject, body string) error {
	m.entered <- struct{}{}
	<-m.release
	return nil
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	storage, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	sess := session.New(storage)
	require.NoError(t, sess.Login("user@example.com"))
	return sess
}

func TestScheduler_EvaluateDispatchesAndRecordsTimestamp(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())
	store.Create(task.Draft{
		Title:    "overdue thing",
		Priority: task.PriorityHigh,
		DueDate:  time.Now().AddDate(0, 0, -1),
	})

	mailer := &captureMailer{}
	s := NewScheduler(store, sess, mailer)
	evalTime := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return evalTime }

	digest := s.Evaluate()

	assert.Equal(t, 1, mailer.sends)
	assert.Equal(t, "user@example.com", mailer.to)
	assert.Equal(t, "Task Reminder - You have 1 pending task(s)", mailer.subject)
	assert.Contains(t, mailer.body, "overdue thing")
	assert.Equal(t, 1, digest.TotalPending)

	raw, ok, err := sess.Storage().Get(session.KeyLastNotification)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, evalTime.Format(time.RFC3339), raw)
}

func TestScheduler_EvaluateWithNoTasksSendsAcknowledgment(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	mailer := &captureMailer{}
	s := NewScheduler(store, sess, mailer)

	s.Evaluate()

	// An empty collection still produces a pass and a recorded timestamp
	assert.Equal(t, "Great job! You have no pending tasks.", mailer.body)
	_, ok, err := sess.Storage().Get(session.KeyLastNotification)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScheduler_DeliveryFailureStillRecordsTimestamp(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	mailer := &captureMailer{err: errors.New("smtp unreachable")}
	s := NewScheduler(store, sess, mailer)

	s.Evaluate()

	// The next tick is the retry; the cadence must not stall on failure
	_, ok, err := sess.Storage().Get(session.KeyLastNotification)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScheduler_ActivateRunsImmediatePass(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	mailer := &captureMailer{}
	s := NewScheduler(store, sess, mailer)
	defer s.Deactivate()

	s.Activate()

	assert.True(t, s.Active())
	assert.Equal(t, 1, mailer.sends)
}

func TestScheduler_ActivateTwiceIsNoOp(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	mailer := &captureMailer{}
	s := NewScheduler(store, sess, mailer)
	defer s.Deactivate()

	s.Activate()
	s.Activate()

	assert.Equal(t, 1, mailer.sends)
}

func TestScheduler_DeactivateDisarms(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	s := NewScheduler(store, sess, &captureMailer{})
	s.Activate()
	s.Deactivate()

	assert.False(t, s.Active())
	// Deactivating twice must not panic on the closed channel
	s.Deactivate()
}

func TestScheduler_ReactivationRunsImmediatePassAgain(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	mailer := &captureMailer{}
	s := NewScheduler(store, sess, mailer)
	defer s.Deactivate()

	s.Activate()
	s.Deactivate()
	s.Activate()

	assert.Equal(t, 2, mailer.sends)
}

func TestScheduler_DeactivateWaitsForPassInFlight(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())

	mailer := &blockingMailer{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewScheduler(store, sess, mailer)

	// The immediate pass parks inside the mailer
	go s.Activate()
	select {
	case <-mailer.entered:
	case <-time.After(time.Second):
		t.Fatal("evaluation pass never started")
	}

	deactivated := make(chan struct{})
	go func() {
		s.Deactivate()
		close(deactivated)
	}()

	// Deactivate must not return while the pass is still running
	select {
	case <-deactivated:
		t.Fatal("Deactivate returned with a pass in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(mailer.release)
	select {
	case <-deactivated:
	case <-time.After(time.Second):
		t.Fatal("Deactivate never returned after the pass finished")
	}

	// Teardown after Deactivate: the finished pass must not resurface
	// any session key
	require.NoError(t, sess.Logout())
	_, ok, err := sess.Storage().Get(session.KeyLastNotification)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduler_TimeUntilNextBeforeFirstPass(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())
	s := NewScheduler(store, sess, &captureMailer{})

	assert.Equal(t, "First notification will run immediately", s.TimeUntilNext())
}

func TestScheduler_TimeUntilNextCountsDown(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())
	s := NewScheduler(store, sess, &captureMailer{})

	last := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, sess.Storage().Set(session.KeyLastNotification, last.Format(time.RFC3339)))

	// 19 minutes into the 20 minute period
	s.now = func() time.Time { return last.Add(19 * time.Minute) }
	assert.Equal(t, "Next notification in 1m 0s", s.TimeUntilNext())

	s.now = func() time.Time { return last.Add(19*time.Minute + 30*time.Second) }
	assert.Equal(t, "Next notification in 0m 30s", s.TimeUntilNext())
}

func TestScheduler_TimeUntilNextWhenOverdue(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())
	s := NewScheduler(store, sess, &captureMailer{})

	last := time.Now().Add(-21 * time.Minute)
	require.NoError(t, sess.Storage().Set(session.KeyLastNotification, last.Format(time.RFC3339)))

	assert.Equal(t, "Next notification is due now", s.TimeUntilNext())
}

func TestScheduler_TimeUntilNextUnparsableRecord(t *testing.T) {
	sess := newTestSession(t)
	store := task.NewStore(sess.Storage())
	s := NewScheduler(store, sess, &captureMailer{})

	require.NoError(t, sess.Storage().Set(session.KeyLastNotification, "not a timestamp"))

	assert.Equal(t, "First notification will run immediately", s.TimeUntilNext())
}
