// Package runner implements the build engine: the per-task staleness
// decision, the memoized execution of task job chains, and the top-level
// scheduling of requested targets.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.trai.ch/jig/internal/core/domain"
	"go.trai.ch/jig/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner drives one build invocation over a populated registry. It owns the
// per-build memoization of staleness and execution results, so a fresh Runner
// must be constructed for every invocation.
//
// The concurrency policy is read from the settings store once at
// construction: flag "parallel" set to "true" makes top-level scheduling and
// dependency execution concurrent; any other value makes them sequential.
// Setting it to "false" additionally runs parallel job groups in declaration
// order. The "force" flag makes every task stale regardless of timestamps.
type Runner struct {
	registry  *domain.Registry
	store     ports.SettingsStore
	logger    ports.Logger
	telemetry ports.Telemetry

	parallel         bool
	sequentialGroups bool
	force            bool
	trace            bool

	mu        sync.Mutex
	mustRun   map[domain.InternedString]*Future[bool]
	execution map[domain.InternedString]*Future[bool]
}

// New creates a Runner for one build invocation.
func New(registry *domain.Registry, store ports.SettingsStore, logger ports.Logger, telemetry ports.Telemetry) *Runner {
	return &Runner{
		registry:         registry,
		store:            store,
		logger:           logger,
		telemetry:        telemetry,
		parallel:         store.Flag("parallel") == "true",
		sequentialGroups: store.Flag("parallel") == "false",
		force:            store.Flag("force") == "true",
		trace:            store.Flag("debug") == "true",
		mustRun:          make(map[domain.InternedString]*Future[bool]),
		execution:        make(map[domain.InternedString]*Future[bool]),
	}
}

// memoize returns the cached future for key, or installs a fresh one and
// starts its single computation. The cache slot is written exactly once; a
// failed computation stays failed for the rest of the build.
func (r *Runner) memoize(cache map[domain.InternedString]*Future[bool], key domain.InternedString, compute func() (bool, error)) *Future[bool] {
	r.mu.Lock()
	if f, ok := cache[key]; ok {
		r.mu.Unlock()
		return f
	}
	f := newFuture[bool]()
	cache[key] = f
	r.mu.Unlock()

	go func() {
		f.complete(compute())
	}()
	return f
}

// Execute returns a future resolving to true iff the task's jobs actually
// executed this build, false when the task was skipped as up to date.
// Memoized per task: no matter how many dependents request a task, its jobs
// run at most once per build, and a failure is returned to every requester
// without re-running jobs or cleanup.
func (r *Runner) Execute(ctx context.Context, t *domain.Task) *Future[bool] {
	return r.memoize(r.execution, t.Name(), func() (bool, error) {
		return r.computeExecution(ctx, t)
	})
}

func (r *Runner) computeExecution(ctx context.Context, t *domain.Task) (bool, error) {
	stale, err := r.MustRun(ctx, t).Wait(ctx)
	if err != nil {
		// A task whose staleness could not be determined is treated like a
		// failed task: its recorded settings and declared outputs can no
		// longer be trusted.
		r.cleanup(t)
		return false, err
	}

	vctx, vertex := r.telemetry.Record(ctx, t.Name().String())
	if !stale {
		r.tracef("task %s: up to date", t.Name().String())
		vertex.Cached()
		return false, nil
	}

	if err := r.runTask(vctx, t); err != nil {
		// Cleanup is advisory: its own failures are swallowed and the
		// original error is what surfaces.
		r.cleanup(t)
		vertex.Complete(err)
		return false, err
	}
	vertex.Complete(nil)
	return true, nil
}

func (r *Runner) runTask(ctx context.Context, t *domain.Task) error {
	if err := r.executeDependencies(ctx, t); err != nil {
		return err
	}
	if err := r.prepareOutputDirs(t.Outputs()); err != nil {
		return err
	}
	if err := r.runJobs(ctx, t.Jobs()); err != nil {
		return err
	}
	if err := r.store.Remember(t.Name().String(), t.Settings()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to persist task settings"), "task", t.Name().String())
	}
	return nil
}

// executeDependencies runs every dependency's execution engine and waits for
// all of them. Results are awaited but not otherwise inspected.
func (r *Runner) executeDependencies(ctx context.Context, t *domain.Task) error {
	deps := t.Dependencies()
	if len(deps) == 0 {
		return nil
	}

	if r.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, dep := range deps {
			g.Go(func() error {
				depTask, err := r.registry.Get(dep.String())
				if err != nil {
					return err
				}
				_, err = r.Execute(gctx, depTask).Wait(gctx)
				return err
			})
		}
		return g.Wait()
	}

	for _, dep := range deps {
		depTask, err := r.registry.Get(dep.String())
		if err != nil {
			return err
		}
		if _, err := r.Execute(ctx, depTask).Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// prepareOutputDirs creates the parent directories of all declared outputs.
// Shorter paths are created first as an approximation of parent-before-child
// ordering. This is not a true prefix ordering (an unrelated long path sorts
// after a short one), but MkdirAll tolerates existing parents and the
// ordering is kept as observable behavior.
func (r *Runner) prepareOutputDirs(outputs []domain.InternedString) error {
	seen := make(map[string]struct{}, len(outputs))
	dirs := make([]string, 0, len(outputs))
	for _, out := range outputs {
		dir := filepath.Dir(out.String())
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return len(dirs[i]) < len(dirs[j])
	})

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o777); err != nil { //nolint:gosec // build outputs are world-readable by default
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
		}
	}
	return nil
}

// runJobs executes the chain strictly left to right; each entry starts only
// after the previous one finished. A group entry joins all of its members
// before the chain proceeds.
func (r *Runner) runJobs(ctx context.Context, jobs []domain.JobEntry) error {
	for _, entry := range jobs {
		if entry.Run != nil {
			if err := entry.Run(ctx); err != nil {
				return err
			}
			continue
		}
		if err := r.runGroup(ctx, entry.Group); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runGroup(ctx context.Context, group []domain.JobFunc) error {
	if r.sequentialGroups {
		for _, job := range group {
			if err := job(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range group {
		g.Go(func() error {
			return job(gctx)
		})
	}
	return g.Wait()
}

// cleanup discards the task's persisted settings and best-effort deletes its
// declared outputs. Runs once per task per build (the failed execution future
// is memoized), and its own errors never surface.
func (r *Runner) cleanup(t *domain.Task) {
	name := t.Name().String()
	if err := r.store.Forget(name); err != nil {
		r.tracef("task %s: failed to forget settings: %v", name, err)
	}
	for _, out := range t.Outputs() {
		if err := os.Remove(out.String()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.tracef("task %s: failed to remove output %s: %v", name, out.String(), err)
		}
	}
}

func (r *Runner) tracef(format string, args ...any) {
	if !r.trace {
		return
	}
	r.logger.Debug(fmt.Sprintf(format, args...))
}
