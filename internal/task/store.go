// Package task holds the task model and the store that owns the task list.
package task

import (
	"strings"
	"time"

	"taskflow/internal/dates"
)

// Persister receives the full task list after every committed mutation.
// Implementations must not fail loudly; the in-memory list stays authoritative.
type Persister interface {
	Save(tasks []Task)
}

// Toggle describes the outcome of flipping a task's done flag.
type Toggle struct {
	Task Task
	// Completed is true only when the task went from incomplete to complete.
	Completed bool
}

// Handle carries what is needed to restore a soft-deleted task.
type Handle struct {
	Task  Task
	Index int
}

// Store owns the authoritative, newest-first task list. It is not safe for
// concurrent use.
type Store struct {
	tasks     []Task
	persister Persister
	now       func() time.Time
	newID     func(time.Time, func(string) bool) string
}

// Option configures a Store.
type Option func(*Store)

// WithPersister saves the list after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithClock overrides time.Now for ID generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides ID generation.
func WithIDFunc(fn func(time.Time, func(string) bool) string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore wraps an initial list, typically the result of a load.
func NewStore(tasks []Task, opts ...Option) *Store {
	s := &Store{
		tasks: append([]Task(nil), tasks...),
		now:   time.Now,
		newID: GenerateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	s.persister.Save(s.Tasks())
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add prepends a new task and returns it.
func (s *Store) Add(title string, tag Tag, date string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	if tag == "" {
		tag = DefaultTag
	}
	if !IsValidTag(tag) {
		return Task{}, InvalidTagError{Value: string(tag)}
	}
	if !dates.Valid(date) {
		return Task{}, InvalidDateError{Value: date}
	}

	t := Task{
		ID:    s.newID(s.now(), func(id string) bool { return s.indexOf(id) >= 0 }),
		Title: title,
		Tag:   tag,
		Date:  date,
	}
	s.tasks = append([]Task{t}, s.tasks...)
	s.persist()
	return t, nil
}

// Toggle flips the done flag of the task with the given ID.
func (s *Store) Toggle(id string) (Toggle, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Toggle{}, NotFoundError{ID: id}
	}
	wasDone := s.tasks[i].Done
	s.tasks[i].Done = !wasDone
	s.persist()
	return Toggle{Task: s.tasks[i], Completed: !wasDone}, nil
}

// SoftDelete marks a task as removing without dropping it from the list.
func (s *Store) SoftDelete(id string) (Handle, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Handle{}, NotFoundError{ID: id}
	}
	s.tasks[i].Removing = true
	h := Handle{Task: s.tasks[i], Index: i}
	h.Task.Removing = false
	s.persist()
	return h, nil
}

// CommitDelete drops a removing task. Calling it again for the same ID, or for
// a task that was restored in the meantime, does nothing.
func (s *Store) CommitDelete(id string) bool {
	i := s.indexOf(id)
	if i < 0 || !s.tasks[i].Removing {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist()
	return true
}

// Restore undoes a soft delete. A task still in the list has its removing flag
// cleared in place; a task already dropped is reinserted at
// min(h.Index, len). A task present and not removing is left alone.
func (s *Store) Restore(h Handle) bool {
	if i := s.indexOf(h.Task.ID); i >= 0 {
		if !s.tasks[i].Removing {
			return false
		}
		s.tasks[i].Removing = false
		s.persist()
		return true
	}

	t := h.Task
	t.Removing = false
	idx := min(max(h.Index, 0), len(s.tasks))
	s.tasks = append(s.tasks, Task{})
	copy(s.tasks[idx+1:], s.tasks[idx:])
	s.tasks[idx] = t
	s.persist()
	return true
}

// Tasks returns a copy of the full list, removing tasks included.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

// Len returns the number of tasks in the list, removing tasks included.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// TasksForDate returns the visible tasks on date, newest first.
func (s *Store) TasksForDate(date string) []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.Date == date && !t.Removing {
			out = append(out, t)
		}
	}
	return out
}

// PendingCountForDate counts visible, incomplete tasks on date.
func (s *Store) PendingCountForDate(date string) int {
	n := 0
	for _, t := range s.tasks {
		if t.Date == date && !t.Done && !t.Removing {
			n++
		}
	}
	return n
}

// DatesWithTasks returns the set of dates holding at least one visible task.
func (s *Store) DatesWithTasks() map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range s.tasks {
		if !t.Removing {
			set[t.Date] = struct{}{}
		}
	}
	return set
}
