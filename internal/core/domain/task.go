package domain

import "context"

// JobFunc is one unit of actual work inside a task: an opaque action supplied
// by a command library. The core never inspects it beyond running it.
type JobFunc func(ctx context.Context) error

// JobEntry is one position in a task's ordered job chain. Exactly one of Run
// or Group is set: Run is a single job, Group is a set of jobs captured by
// Task.Group that the engine joins as one chain step.
type JobEntry struct {
	Run   JobFunc
	Group []JobFunc
}

// Task is a named unit of work with declared dependencies, inputs, outputs,
// per-task settings, and an ordered job chain.
//
// A Task is mutated only during the synchronous execution of its definition
// callback (see Registry.Define); afterwards it is read-only. The per-build
// staleness and execution memoization lives in the engine's Runner, which is
// constructed fresh per invocation.
type Task struct {
	name         InternedString
	dependencies []InternedString
	inputs       []InternedString
	inputSet     map[InternedString]struct{}
	outputs      []InternedString
	settings     map[string]string
	jobs         []JobEntry

	forced       bool
	forcedReason string

	// capturing is non-nil while a Group callback is collecting jobs.
	capturing []JobFunc
	grouping  bool
}

// NewTask creates a task with the given name and dependency names.
// Dependencies are kept as names and resolved against the registry at use
// time, so registration order between tasks does not matter.
func NewTask(name string, dependencies []string) *Task {
	deps := make([]InternedString, len(dependencies))
	for i, d := range dependencies {
		deps[i] = NewInternedString(d)
	}
	return &Task{
		name:         NewInternedString(name),
		dependencies: deps,
		inputSet:     make(map[InternedString]struct{}),
		settings:     make(map[string]string),
	}
}

// Name returns the task's registry name.
func (t *Task) Name() InternedString { return t.name }

// Dependencies returns the declared dependency names in order.
func (t *Task) Dependencies() []InternedString { return t.dependencies }

// Inputs returns the declared input paths in insertion order.
func (t *Task) Inputs() []InternedString { return t.inputs }

// Outputs returns the declared output paths in declaration order.
// Duplicates are kept as declared.
func (t *Task) Outputs() []InternedString { return t.outputs }

// Jobs returns the ordered job chain.
func (t *Task) Jobs() []JobEntry { return t.jobs }

// Settings returns the task-scoped settings map. It is persisted by the
// engine on successful execution and discarded on failure.
func (t *Task) Settings() map[string]string { return t.settings }

// Forced reports whether the task was forced to run, and the reason.
func (t *Task) Forced() (string, bool) { return t.forcedReason, t.forced }

// AddJob appends a job to the task's chain. Inside a Group callback the job
// lands in the group's capture list instead.
func (t *Task) AddJob(fn JobFunc) {
	if t.grouping {
		t.capturing = append(t.capturing, fn)
		return
	}
	t.jobs = append(t.jobs, JobEntry{Run: fn})
}

// Input declares input paths. A path already present, or already declared as
// one of this task's own outputs, is skipped: a task's own output never
// counts as one of its staleness-relevant inputs.
func (t *Task) Input(paths ...string) {
	for _, p := range paths {
		in := NewInternedString(p)
		if _, seen := t.inputSet[in]; seen {
			continue
		}
		if t.hasOutput(in) {
			continue
		}
		t.inputSet[in] = struct{}{}
		t.inputs = append(t.inputs, in)
	}
}

// Output declares output paths. Outputs always append; duplicates are kept.
func (t *Task) Output(paths ...string) {
	for _, p := range paths {
		t.outputs = append(t.outputs, NewInternedString(p))
	}
}

func (t *Task) hasOutput(p InternedString) bool {
	for _, out := range t.outputs {
		if out == p {
			return true
		}
	}
	return false
}

// Group opens a job-collection context: fn runs synchronously against the
// task, every AddJob inside it lands in a capture list, and the captured jobs
// are installed as one group entry in the enclosing chain. The engine starts
// the group's members together and waits for all of them before the chain
// proceeds (unless the concurrency policy forces groups sequential).
//
// Nested Group calls flatten into the enclosing capture list.
func (t *Task) Group(fn func()) {
	if t.grouping {
		fn()
		return
	}
	t.grouping = true
	t.capturing = nil
	fn()
	captured := t.capturing
	t.capturing = nil
	t.grouping = false
	if len(captured) == 0 {
		return
	}
	t.jobs = append(t.jobs, JobEntry{Group: captured})
}

// ForceRun marks the task as unconditionally stale, with a human-readable
// reason that is logged when the staleness check fires.
func (t *Task) ForceRun(reason string) {
	t.forced = true
	t.forcedReason = reason
}

// SetSetting records a task-scoped setting for collaborators, persisted on
// successful execution.
func (t *Task) SetSetting(key, value string) {
	t.settings[key] = value
}

// Setting returns the task-scoped setting for key, or "".
func (t *Task) Setting(key string) string {
	return t.settings[key]
}
