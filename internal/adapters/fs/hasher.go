// Package fs provides filesystem helpers for tasks.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher computes content hashes of task input files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// SnapshotJob returns a job that records the content hash of each of the
// task's input files into the task's settings under "input:<path>". Inputs
// that do not exist are skipped; the staleness check already accounts for
// missing inputs via timestamps.
func (h *Hasher) SnapshotJob(t *domain.Task) domain.JobFunc {
	return func(_ context.Context) error {
		for _, input := range t.Inputs() {
			path := input.String()

			hash, err := h.ComputeFileHash(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return err
			}

			t.SetSetting("input:"+path, fmt.Sprintf("%016x", hash))
		}
		return nil
	}
}

// ChangedInput compares the task's current input contents against the hashes
// a previous SnapshotJob recorded. It returns the first input whose content
// differs, or one that was not snapshotted before. Unreadable inputs are
// skipped, matching SnapshotJob.
func (h *Hasher) ChangedInput(t *domain.Task, previous map[string]string) (string, bool) {
	for _, input := range t.Inputs() {
		path := input.String()

		hash, err := h.ComputeFileHash(path)
		if err != nil {
			continue
		}
		if previous["input:"+path] != fmt.Sprintf("%016x", hash) {
			return path, true
		}
	}
	return "", false
}
