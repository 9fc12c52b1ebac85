package config_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/jig/internal/adapters/config"
	"go.trai.ch/jig/internal/adapters/fs"
	"go.trai.ch/jig/internal/adapters/shell"
	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/jig/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.FileConfigLoader {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSettingsStore(ctrl)
	store.EXPECT().Recall(gomock.Any()).Return(nil).AnyTimes()
	return newLoaderWithStore(t, ctrl, store)
}

func newLoaderWithStore(t *testing.T, ctrl *gomock.Controller, store *mocks.MockSettingsStore) *config.FileConfigLoader {
	t.Helper()
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return config.NewFileConfigLoader(shell.NewRunner(mockLogger), fs.NewHasher(), store)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_BasicTasks(t *testing.T) {
	path := writeConfig(t, `
version: "1"
tasks:
  compile:
    input: [main.c]
    target: [bin/app]
    cmd: [gcc, -o, bin/app, main.c]
  test:
    dependsOn: [compile]
    cmd: [./bin/app, --self-test]
`)

	registry, err := newLoader(t).Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, registry.TaskCount())

	compile, err := registry.Get("compile")
	require.NoError(t, err)
	require.Equal(t, []domain.InternedString{domain.NewInternedString("main.c")}, compile.Inputs())
	require.Equal(t, []domain.InternedString{domain.NewInternedString("bin/app")}, compile.Outputs())
	require.Len(t, compile.Jobs(), 1)

	test, err := registry.Get("test")
	require.NoError(t, err)
	require.Equal(t, []domain.InternedString{domain.NewInternedString("compile")}, test.Dependencies())
}

func TestLoad_GroupBecomesOneJobEntry(t *testing.T) {
	path := writeConfig(t, `
version: "1"
tasks:
  assets:
    group:
      - [cp, a.png, out/a.png]
      - [cp, b.png, out/b.png]
`)

	registry, err := newLoader(t).Load(path)
	require.NoError(t, err)

	task, err := registry.Get("assets")
	require.NoError(t, err)
	require.Len(t, task.Jobs(), 1)
	require.Len(t, task.Jobs()[0].Group, 2)
}

func TestLoad_ForceAndSnapshot(t *testing.T) {
	path := writeConfig(t, `
version: "1"
tasks:
  release:
    input: [main.c]
    force: always rebuild releases
    snapshot: true
    cmd: [make, release]
`)

	registry, err := newLoader(t).Load(path)
	require.NoError(t, err)

	task, err := registry.Get("release")
	require.NoError(t, err)

	reason, forced := task.Forced()
	require.True(t, forced)
	require.Equal(t, "always rebuild releases", reason)

	// snapshot job plus the command job
	require.Len(t, task.Jobs(), 2)
}

func TestLoad_MissingDependency(t *testing.T) {
	path := writeConfig(t, `
version: "1"
tasks:
  test:
    dependsOn: [compile]
`)

	_, err := newLoader(t).Load(path)
	require.Error(t, err)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	require.Equal(t, "compile", zErr.Metadata()["missing_dependency"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "tasks: [not: a: map")

	_, err := newLoader(t).Load(path)
	require.Error(t, err)
}

func TestLoad_SnapshotJobRuns(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(input, []byte("payload"), 0o644))

	path := filepath.Join(dir, "jig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
tasks:
  pack:
    input: [`+input+`]
    snapshot: true
`), 0o644))

	registry, err := newLoader(t).Load(path)
	require.NoError(t, err)

	task, err := registry.Get("pack")
	require.NoError(t, err)
	require.Len(t, task.Jobs(), 1)

	require.NoError(t, task.Jobs()[0].Run(context.Background()))
	require.NotEmpty(t, task.Setting("input:"+input))
}

func TestLoad_SnapshotDetectsChangedInputContent(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(input, []byte("payload"), 0o644))

	path := filepath.Join(dir, "jig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
tasks:
  pack:
    input: [`+input+`]
    snapshot: true
`), 0o644))

	hash, err := fs.NewHasher().ComputeFileHash(input)
	require.NoError(t, err)
	current := fmt.Sprintf("%016x", hash)

	t.Run("unchanged content is not forced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockSettingsStore(ctrl)
		store.EXPECT().Recall("pack").Return(map[string]string{"input:" + input: current})

		registry, err := newLoaderWithStore(t, ctrl, store).Load(path)
		require.NoError(t, err)

		task, err := registry.Get("pack")
		require.NoError(t, err)
		_, forced := task.Forced()
		require.False(t, forced)
	})

	t.Run("changed content forces the task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockSettingsStore(ctrl)
		store.EXPECT().Recall("pack").Return(map[string]string{"input:" + input: "0000000000000000"})

		registry, err := newLoaderWithStore(t, ctrl, store).Load(path)
		require.NoError(t, err)

		task, err := registry.Get("pack")
		require.NoError(t, err)
		reason, forced := task.Forced()
		require.True(t, forced)
		require.Contains(t, reason, input)
	})
}
