// Package ports defines the core interfaces for the application.
package ports

// SettingsStore defines the interface for the persistent settings store: the
// process-wide flag lookup plus per-task remembered settings.
//
// Flags recognized by the engine: "parallel" (concurrency policy), "verbose"
// (diagnostic output), "debug" (per-task staleness trace).
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SettingsStore interface {
	// Flag returns the global flag value for key, or "" when unset.
	Flag(key string) string

	// SetFlag sets a global flag for the lifetime of the store.
	SetFlag(key, value string)

	// Remember persists a task's settings under its name. Called by the
	// engine on successful execution.
	Remember(taskName string, settings map[string]string) error

	// Forget discards any previously persisted settings for the task.
	// Called by the engine on failed execution.
	Forget(taskName string) error

	// Recall returns the settings persisted for the task by a previous
	// run, or nil. Collaborators use this for change detection beyond
	// modification times.
	Recall(taskName string) map[string]string
}
