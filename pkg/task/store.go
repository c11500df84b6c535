package task

import (
	"encoding/json"
	"sync"
	"time"

	"taskmate/pkg/utils"
)

// storageKey is the session storage key the task list is persisted under
const storageKey = "tasks"

// Storage is the slice of session storage the store writes through to
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store owns the ordered task collection for the session. The newest
// task sits at the front. Every mutation is applied under the lock and
// written through to session storage before the lock is released, so
// readers always observe a fully committed collection.
type Store struct {
	mu      sync.Mutex
	tasks   []Task
	lastID  int64
	storage Storage
	now     func() time.Time
}

// NewStore creates a store, rehydrating the collection from session
// storage when a persisted list exists. Malformed persisted data is
// treated as absent; session storage is a cache, not the source of truth.
func NewStore(storage Storage) *Store {
	s := &Store{
		storage: storage,
		now:     time.Now,
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	if s.storage == nil {
		return
	}
	raw, ok, err := s.storage.Get(storageKey)
	if err != nil {
		utils.Log("Error reading persisted tasks: %v", err)
		return
	}
	if !ok {
		return
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		utils.Log("Ignoring malformed persisted tasks: %v", err)
		return
	}
	s.tasks = tasks
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	utils.Log("Rehydrated %d task(s) from session storage", len(tasks))
}

// persistLocked serializes the collection back to session storage.
// An empty collection is only written when a persisted value already
// exists, so an intentional delete-everything still sticks but a fresh
// session does not create the key. Callers must hold the lock.
func (s *Store) persistLocked() {
	if s.storage == nil {
		return
	}
	if len(s.tasks) == 0 {
		_, ok, err := s.storage.Get(storageKey)
		if err != nil {
			// The key may exist; write rather than risk dropping an
			// intentional clear
			utils.Log("Error checking persisted tasks: %v", err)
		} else if !ok {
			return
		}
	}
	data, err := json.Marshal(s.tasks)
	if err != nil {
		utils.Log("Error serializing tasks: %v", err)
		return
	}
	if err := s.storage.Set(storageKey, string(data)); err != nil {
		utils.Log("Error persisting tasks: %v", err)
	}
}

// nextID assigns a millisecond wall-clock id with a monotonic guard so
// two creates within the same millisecond still get distinct ids
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Create builds a task from the draft and prepends it to the collection
func (s *Store) Create(draft Draft) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:          s.nextID(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		Completed:   false,
		CreatedAt:   s.now(),
	}
	s.tasks = append([]Task{t}, s.tasks...)
	s.persistLocked()

	utils.Log("Created task %d: %s", t.ID, t.Title)
	return t
}

// Update merges the patch into the task matching id. Returns false when
// the id is unknown; the id may have been removed by an earlier delete,
// so a miss is not an error.
func (s *Store) Update(id int64, patch Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	patch.apply(&s.tasks[idx])
	s.persistLocked()

	utils.Log("Updated task %d", id)
	return true
}

// Delete removes the task matching id. The caller is responsible for
// obtaining user confirmation first. Returns false when the id is unknown.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.persistLocked()

	utils.Log("Deleted task %d", id)
	return true
}

// ToggleComplete flips the completion flag on the task matching id
func (s *Store) ToggleComplete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	s.persistLocked()

	utils.Log("Toggled task %d completed=%t", id, s.tasks[idx].Completed)
	return true
}

// Get returns the task matching id
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx], true
}

// Snapshot returns a copy of the full ordered collection, newest first
func (s *Store) Snapshot() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Reset empties the in-memory collection without touching storage.
// Used at session teardown, after the persisted keys are already gone.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

func (s *Store) indexLocked(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
