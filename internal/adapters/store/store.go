// Package store implements the persistent settings store: global flags plus
// per-task remembered settings, backed by a flat YAML file.
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/jig/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file location relative to the project root.
const DefaultPath = ".jig/settings.yaml"

// fileFormat is the on-disk shape of the settings file.
type fileFormat struct {
	Flags map[string]string            `yaml:"flags,omitempty"`
	Tasks map[string]map[string]string `yaml:"tasks,omitempty"`
}

// Store implements ports.SettingsStore using a flat YAML file with an
// in-memory cache. Flags set at runtime (e.g. from CLI flags) override the
// loaded values and are persisted on the next save.
type Store struct {
	path  string
	mu    sync.RWMutex
	flags map[string]string
	tasks map[string]map[string]string
}

// NewStore creates a settings store backed by the file at path. A missing
// file is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		flags: make(map[string]string),
		tasks: make(map[string]map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read settings store")
	}

	if len(data) == 0 {
		return nil
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return zerr.Wrap(err, "failed to parse settings store")
	}
	if ff.Flags != nil {
		s.flags = ff.Flags
	}
	if ff.Tasks != nil {
		s.tasks = ff.Tasks
	}
	return nil
}

// save writes the current state to disk. Callers must hold s.mu.
func (s *Store) save() error {
	ff := fileFormat{Flags: s.flags, Tasks: s.tasks}
	data, err := yaml.Marshal(ff)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal settings store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for settings store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write settings store")
	}
	return nil
}

// Flag returns the global flag value for key, or "".
func (s *Store) Flag(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[key]
}

// SetFlag sets a global flag. It is persisted on the next Remember/Forget.
func (s *Store) SetFlag(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
}

// Remember persists a task's settings under its name.
func (s *Store) Remember(taskName string, settings map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	s.tasks[taskName] = copied
	return s.save()
}

// Forget discards any persisted settings for the task.
func (s *Store) Forget(taskName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, taskName)
	return s.save()
}

// Recall returns the settings persisted for the task, or nil.
func (s *Store) Recall(taskName string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.tasks[taskName]
	if !ok {
		return nil
	}
	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	return copied
}

var _ ports.SettingsStore = (*Store)(nil)
