package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/jig/internal/adapters/fs"
	"go.trai.ch/jig/internal/core/domain"
)

func TestComputeFileHash_Deterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	hasher := fs.NewHasher()

	h1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	h2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestComputeFileHash_ContentSensitive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("content-a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("content-b"), 0o644))

	hasher := fs.NewHasher()

	ha, err := hasher.ComputeFileHash(a)
	require.NoError(t, err)
	hb, err := hasher.ComputeFileHash(b)
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)
}

func TestComputeFileHash_MissingFile(t *testing.T) {
	hasher := fs.NewHasher()

	_, err := hasher.ComputeFileHash(filepath.Join(t.TempDir(), "gone.txt"))
	require.Error(t, err)
}

func TestSnapshotJob_RecordsInputHashes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int main() {}"), 0o644))

	task := domain.NewTask("compile", nil)
	task.Input(path)

	hasher := fs.NewHasher()
	require.NoError(t, hasher.SnapshotJob(task)(context.Background()))

	want, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%016x", want), task.Setting("input:"+path))
}

func TestSnapshotJob_SkipsMissingInputs(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	missing := filepath.Join(dir, "missing.txt")
	require.NoError(t, os.WriteFile(present, []byte("here"), 0o644))

	task := domain.NewTask("compile", nil)
	task.Input(present, missing)

	hasher := fs.NewHasher()
	require.NoError(t, hasher.SnapshotJob(task)(context.Background()))

	require.NotEmpty(t, task.Setting("input:"+present))
	require.Empty(t, task.Setting("input:"+missing))
}

func TestChangedInput_ComparesAgainstRecordedHashes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("int main() {}"), 0o644))

	task := domain.NewTask("compile", nil)
	task.Input(path)

	hasher := fs.NewHasher()
	hash, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	recorded := map[string]string{"input:" + path: fmt.Sprintf("%016x", hash)}

	_, changed := hasher.ChangedInput(task, recorded)
	require.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("int main() { return 1; }"), 0o644))
	got, changed := hasher.ChangedInput(task, recorded)
	require.True(t, changed)
	require.Equal(t, path, got)
}

func TestChangedInput_UnrecordedInputCountsAsChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.c")
	require.NoError(t, os.WriteFile(path, []byte("void extra() {}"), 0o644))

	task := domain.NewTask("compile", nil)
	task.Input(path)

	got, changed := fs.NewHasher().ChangedInput(task, map[string]string{})
	require.True(t, changed)
	require.Equal(t, path, got)
}

func TestChangedInput_SkipsMissingInputs(t *testing.T) {
	task := domain.NewTask("compile", nil)
	task.Input(filepath.Join(t.TempDir(), "missing.c"))

	_, changed := fs.NewHasher().ChangedInput(task, map[string]string{})
	require.False(t, changed)
}
