package simplify

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/varlens/internal/types"
)

// SnapshotEntry pairs a variable with its simplified tree.
type SnapshotEntry struct {
	Variable   types.Variable
	Simplified *types.SimplifiedValue
}

// SimplifySnapshot simplifies a whole set of variables concurrently.
// Variables are independent, so each gets its own goroutine up to the
// worker limit. Results come back in input order. The only error is
// context cancellation.
func (s *Simplifier) SimplifySnapshot(ctx context.Context, vars []types.Variable) ([]SnapshotEntry, error) {
	return s.SimplifySnapshotN(ctx, vars, runtime.NumCPU())
}

// SimplifySnapshotN is SimplifySnapshot with an explicit worker limit.
func (s *Simplifier) SimplifySnapshotN(ctx context.Context, vars []types.Variable, workers int) ([]SnapshotEntry, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]SnapshotEntry, len(vars))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, v := range vars {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = SnapshotEntry{Variable: v, Simplified: s.Simplify(v)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
