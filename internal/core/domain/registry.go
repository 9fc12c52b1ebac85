// Package domain contains the core domain model for the task runner: tasks,
// the task registry, and the job composition primitives.
package domain

import "go.trai.ch/zerr"

// Registry maps task names to tasks and tracks which task is currently inside
// its definition callback, so collaborator code can attach jobs, inputs, and
// outputs to it during construction.
//
// The registry is populated during the single-threaded definition phase and
// is read-only once execution starts; it needs no locking.
type Registry struct {
	tasks    map[InternedString]*Task
	defining *Task
}

// NewRegistry creates an empty Registry. One registry is constructed per
// build process.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[InternedString]*Task),
	}
}

// Define creates a task, runs the definition callback against it, and stores
// it under name. While the callback runs the task is reported by Current.
// A nil definition registers a task with no jobs of its own.
//
// Defining a name twice is a configuration mistake and fails with
// ErrTaskAlreadyExists.
func (r *Registry) Define(name string, dependencies []string, definition func(*Task)) (*Task, error) {
	key := NewInternedString(name)
	if _, exists := r.tasks[key]; exists {
		return nil, zerr.With(zerr.Wrap(ErrTaskAlreadyExists, "task definition rejected"), "task_name", name)
	}

	t := NewTask(name, dependencies)
	if definition != nil {
		r.defining = t
		definition(t)
		r.defining = nil
	}

	r.tasks[key] = t
	return t, nil
}

// Get returns the task registered under name, or ErrTaskNotFound.
func (r *Registry) Get(name string) (*Task, error) {
	t, ok := r.tasks[NewInternedString(name)]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrTaskNotFound, "task lookup failed"), "task_name", name)
	}
	return t, nil
}

// Current returns the task currently inside its definition callback, or nil.
func (r *Registry) Current() *Task {
	return r.defining
}

// TaskCount returns the number of registered tasks.
func (r *Registry) TaskCount() int {
	return len(r.tasks)
}
