package store

import "github.com/idilsaglam/taskman/internal/model"

// Store is an ordered, in-memory list of tasks addressed by position.
// No locking: it is owned by a single goroutine (the UI loop or a one-shot command).
type Store struct {
	tasks []model.Task
}

// New returns a store holding the given tasks in order.
func New(tasks ...model.Task) *Store {
	s := &Store{}
	s.Replace(tasks)
	return s
}

// Add appends a task. Empty fields are allowed.
func (s *Store) Add(name, description, deadline string) {
	s.tasks = append(s.tasks, model.Task{
		Name:        name,
		Description: description,
		Deadline:    deadline,
	})
}

// Edit overwrites all three fields of the task at index.
// It reports false and changes nothing when index is out of range.
func (s *Store) Edit(index int, name, description, deadline string) bool {
	if !s.inRange(index) {
		return false
	}
	t := &s.tasks[index]
	t.Name = name
	t.Description = description
	t.Deadline = deadline
	return true
}

// Remove deletes the task at index, shifting later tasks down by one.
// It reports false and changes nothing when index is out of range.
func (s *Store) Remove(index int) bool {
	if !s.inRange(index) {
		return false
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return true
}

// Insert puts t at index, clamping index to [0, Len()].
func (s *Store) Insert(index int, t model.Task) {
	if index < 0 {
		index = 0
	}
	if index > len(s.tasks) {
		index = len(s.tasks)
	}
	s.tasks = append(s.tasks, model.Task{})
	copy(s.tasks[index+1:], s.tasks[index:])
	s.tasks[index] = t
}

// List returns the live ordered slice. Callers must not keep it across mutations.
func (s *Store) List() []model.Task { return s.tasks }

func (s *Store) Len() int { return len(s.tasks) }

// Get returns the task at index.
func (s *Store) Get(index int) (model.Task, bool) {
	if !s.inRange(index) {
		return model.Task{}, false
	}
	return s.tasks[index], true
}

// Replace swaps the whole content for tasks, in order.
func (s *Store) Replace(tasks []model.Task) {
	s.tasks = make([]model.Task, len(tasks))
	copy(s.tasks, tasks)
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
