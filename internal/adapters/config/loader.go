// Package config provides the configuration loader for jig.
package config

import (
	"os"
	"sort"

	"go.trai.ch/jig/internal/adapters/fs"
	"go.trai.ch/jig/internal/adapters/shell"
	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/jig/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	runner *shell.Runner
	hasher *fs.Hasher
	store  ports.SettingsStore
}

// NewFileConfigLoader creates a loader that turns command lists into shell
// jobs and optional input snapshots into hasher jobs. The store supplies the
// input hashes recorded by previous runs.
func NewFileConfigLoader(runner *shell.Runner, hasher *fs.Hasher, store ports.SettingsStore) *FileConfigLoader {
	return &FileConfigLoader{runner: runner, hasher: hasher, store: store}
}

// Jigfile represents the structure of the jig.yaml configuration file.
type Jigfile struct {
	Version string             `yaml:"version"`
	Tasks   map[string]TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Input     []string   `yaml:"input"`
	Cmd       []string   `yaml:"cmd"`
	Group     [][]string `yaml:"group"`
	Target    []string   `yaml:"target"`
	DependsOn []string   `yaml:"dependsOn"`
	Force     string     `yaml:"force"`
	Snapshot  bool       `yaml:"snapshot"`
}

// Load reads a configuration file from the given path and returns a populated
// task registry.
func (l *FileConfigLoader) Load(path string) (*domain.Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var jigfile Jigfile
	if err := yaml.Unmarshal(data, &jigfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	taskNames := make(map[string]bool)
	for name := range jigfile.Tasks {
		taskNames[name] = true
	}

	// Define tasks in a stable order so failures are reproducible.
	names := make([]string, 0, len(jigfile.Tasks))
	for name := range jigfile.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := domain.NewRegistry()
	for _, name := range names {
		dto := jigfile.Tasks[name]

		for _, dep := range dto.DependsOn {
			if !taskNames[dep] {
				return nil, zerr.With(zerr.With(zerr.New("missing dependency"),
					"task_name", name),
					"missing_dependency", dep)
			}
		}

		if _, err := registry.Define(name, dto.DependsOn, l.definition(name, dto)); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// definition translates a task DTO into the corresponding task setup.
func (l *FileConfigLoader) definition(name string, dto TaskDTO) func(*domain.Task) {
	return func(t *domain.Task) {
		t.Input(dto.Input...)
		t.Output(dto.Target...)

		if dto.Force != "" {
			t.ForceRun(dto.Force)
		}

		if dto.Snapshot {
			// Snapshot tasks are stale when input contents changed since the
			// last recorded run, even if timestamps alone look fresh. The
			// first run has no recorded hashes; timestamps decide it.
			if previous := l.store.Recall(name); previous != nil {
				if path, changed := l.hasher.ChangedInput(t, previous); changed {
					t.ForceRun("content of " + path + " changed")
				}
			}
			t.AddJob(l.hasher.SnapshotJob(t))
		}

		if len(dto.Cmd) > 0 {
			t.AddJob(l.runner.Job(dto.Cmd))
		}

		if len(dto.Group) > 0 {
			t.Group(func() {
				for _, argv := range dto.Group {
					t.AddJob(l.runner.Job(argv))
				}
			})
		}
	}
}
