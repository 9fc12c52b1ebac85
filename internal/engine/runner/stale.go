package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// MustRun returns a future resolving to true iff the task's jobs need to
// execute this build. Memoized per task, so in a diamond graph the shared
// dependency's staleness is evaluated once and every path observes the same
// answer.
func (r *Runner) MustRun(ctx context.Context, t *domain.Task) *Future[bool] {
	return r.memoize(r.mustRun, t.Name(), func() (bool, error) {
		return r.computeMustRun(ctx, t)
	})
}

func (r *Runner) computeMustRun(ctx context.Context, t *domain.Task) (bool, error) {
	name := t.Name().String()

	// A side-effect task with jobs but no declared artifacts has nothing
	// to compare timestamps against; it always runs.
	if len(t.Outputs()) == 0 && len(t.Jobs()) > 0 {
		r.tracef("task %s: no declared outputs, always runs", name)
		return true, nil
	}

	if reason, forced := t.Forced(); forced {
		r.logger.Info(fmt.Sprintf("task %s: forced to run (%s)", name, reason))
		return true, nil
	}

	if r.force {
		r.tracef("task %s: forced by flag", name)
		return true, nil
	}

	stale, err := r.anyDependencyStale(ctx, t)
	if err != nil {
		return false, err
	}
	if stale {
		return true, nil
	}

	return r.compareTimes(t)
}

// anyDependencyStale evaluates every dependency's staleness concurrently.
// Only staleness is consulted here, never execution.
func (r *Runner) anyDependencyStale(ctx context.Context, t *domain.Task) (bool, error) {
	deps := t.Dependencies()
	if len(deps) == 0 {
		return false, nil
	}

	results := make([]bool, len(deps))
	g, gctx := errgroup.WithContext(ctx)
	for i, dep := range deps {
		g.Go(func() error {
			depTask, err := r.registry.Get(dep.String())
			if err != nil {
				return err
			}
			stale, err := r.MustRun(gctx, depTask).Wait(gctx)
			if err != nil {
				return err
			}
			results[i] = stale
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for i, stale := range results {
		if stale {
			r.tracef("task %s: dependency %s must run", t.Name().String(), deps[i].String())
			return true, nil
		}
	}
	return false, nil
}

// compareTimes decides staleness from input and output modification times.
// A missing output means the target was never built. A missing input is
// treated as older than anything and does not by itself force a rebuild.
func (r *Runner) compareTimes(t *domain.Task) (bool, error) {
	name := t.Name().String()

	var latestInput time.Time
	for _, in := range t.Inputs() {
		mt, exists, err := modTime(in.String())
		if err != nil {
			return false, err
		}
		if exists && mt.After(latestInput) {
			latestInput = mt
		}
	}

	outputs := t.Outputs()
	if len(outputs) == 0 {
		// No outputs and no jobs (the jobs case resolved earlier): up
		// to date by the vacuous comparison.
		r.tracef("task %s: nothing to compare, up to date", name)
		return false, nil
	}

	var earliestOutput time.Time
	for i, out := range outputs {
		mt, exists, err := modTime(out.String())
		if err != nil {
			return false, err
		}
		if !exists {
			r.tracef("task %s: output %s missing, must run", name, out.String())
			return true, nil
		}
		if i == 0 || mt.Before(earliestOutput) {
			earliestOutput = mt
		}
	}

	stale := latestInput.After(earliestOutput)
	r.tracef("task %s: latest input %s, earliest output %s, stale=%v",
		name, latestInput.Format(time.RFC3339Nano), earliestOutput.Format(time.RFC3339Nano), stale)
	return stale, nil
}

// modTime reads a file's modification time. A missing file is a recognized
// non-fatal outcome; any other stat failure is fatal.
func modTime(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	return info.ModTime(), true, nil
}
