package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Schedule runs the named tasks and returns, aligned by position to names,
// whether each task's jobs actually executed. Under the parallel policy all
// targets start concurrently and the result order still follows the input
// order; otherwise each target runs to completion before the next starts.
// Any task failure or unknown name fails the whole schedule.
func (r *Runner) Schedule(ctx context.Context, names []string) ([]bool, error) {
	ran := make([]bool, len(names))

	if r.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, name := range names {
			g.Go(func() error {
				t, err := r.registry.Get(name)
				if err != nil {
					return err
				}
				executed, err := r.Execute(gctx, t).Wait(gctx)
				if err != nil {
					return err
				}
				ran[i] = executed
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return ran, nil
	}

	for i, name := range names {
		t, err := r.registry.Get(name)
		if err != nil {
			return nil, err
		}
		executed, err := r.Execute(ctx, t).Wait(ctx)
		if err != nil {
			return nil, err
		}
		ran[i] = executed
	}
	return ran, nil
}
