package notify

import (
	"fmt"
	"sync"
	"time"

	"taskmate/pkg/session"
	"taskmate/pkg/task"
	"taskmate/pkg/utils"
)

// Period is the reminder cadence
const Period = 20 * time.Minute

// Scheduler runs the reminder cadence. It has two states: inactive (no
// timer armed) and active (recurring timer armed). Activation runs one
// evaluation pass immediately so a reminder goes out at login rather
// than a full period later. The scheduler only reads task snapshots; it
// never mutates the store.
type Scheduler struct {
	store  *task.Store
	sess   *session.Session
	mailer Mailer
	period time.Duration
	now    func() time.Time

	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
	active bool

	// runMu is held for the full duration of an evaluation pass.
	// Deactivate acquires it after disarming, so a pass already in
	// flight finishes before Deactivate returns and no pass can touch
	// the session afterwards.
	runMu sync.Mutex
}

// NewScheduler creates an inactive scheduler. A nil mailer falls back
// to the local trace.
func NewScheduler(store *task.Store, sess *session.Session, mailer Mailer) *Scheduler {
	if mailer == nil {
		mailer = TraceMailer{}
	}
	return &Scheduler{
		store:  store,
		sess:   sess,
		mailer: mailer,
		period: Period,
		now:    time.Now,
	}
}

// Activate arms the recurring timer and runs the immediate pass.
// Activating an already active scheduler is a no-op. Re-activation
// after a deactivation always runs the immediate pass again, even if a
// previous session evaluated recently.
func (s *Scheduler) Activate() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.ticker = time.NewTicker(s.period)
	s.done = make(chan struct{})
	ticker, done := s.ticker, s.done
	s.mu.Unlock()

	utils.Log("Notification scheduler activated, period %s", s.period)
	s.Evaluate()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.evaluateIfActive()
			}
		}
	}()
}

// Deactivate disarms the timer and waits out any evaluation pass in
// flight. Once it returns no pass can run against, or write into, a
// torn-down session.
func (s *Scheduler) Deactivate() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.ticker.Stop()
	close(s.done)
	s.ticker = nil
	s.done = nil
	s.mu.Unlock()

	// Drain an in-flight pass. A tick received but not yet started
	// finds active false and skips instead.
	s.runMu.Lock()
	s.runMu.Unlock()

	utils.Log("Notification scheduler deactivated")
}

// Active reports whether the recurring timer is armed
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// evaluateIfActive takes the run lock first, so the active check and
// the pass itself are one atomic unit with respect to Deactivate
func (s *Scheduler) evaluateIfActive() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	active := s.active
	s.mu.Unlock()
	if active {
		s.evaluate()
	}
}

// Evaluate runs one classify-and-dispatch pass over the current task
// collection. The completion timestamp is recorded whether or not
// delivery succeeded; the next tick is the implicit retry.
func (s *Scheduler) Evaluate() Digest {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.evaluate()
}

func (s *Scheduler) evaluate() Digest {
	now := s.now()
	digest := Classify(s.store.Snapshot(), now)

	to := s.sess.Email()
	if err := s.mailer.Send(to, digest.Subject(), digest.Body()); err != nil {
		utils.Log("Reminder delivery to %s failed: %v", to, err)
	}

	if err := s.sess.Storage().Set(session.KeyLastNotification, now.Format(time.RFC3339)); err != nil {
		utils.Log("Error recording notification time: %v", err)
	}

	utils.Log("Evaluation pass: %d pending, %d overdue, %d due today, %d upcoming",
		digest.TotalPending, len(digest.Overdue), len(digest.DueToday), len(digest.Upcoming))
	return digest
}

// TimeUntilNext reports when the next pass is expected, for display
// only. It reads the recorded timestamp and has no side effects; the
// ticker stays authoritative for actually firing, so "due now" can
// briefly show before a tick lands.
func (s *Scheduler) TimeUntilNext() string {
	raw, ok, err := s.sess.Storage().Get(session.KeyLastNotification)
	if err != nil || !ok {
		return "First notification will run immediately"
	}
	last, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "First notification will run immediately"
	}

	remaining := last.Add(s.period).Sub(s.now())
	if remaining <= 0 {
		return "Next notification is due now"
	}
	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60
	return fmt.Sprintf("Next notification in %dm %ds", minutes, seconds)
}
