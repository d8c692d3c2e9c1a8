package binder

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hostlink/internal/host"
)

// Request is one resolution for Warm.
type Request struct {
	Recv      host.Value
	Name      string
	StaticCtx bool
	NoThrow   bool
}

// Warm prebuilds rules for a batch of call sites in parallel. Results keep
// the request order. Workers defaults to the CPU count when zero.
func Warm(ctx context.Context, b *Binder, reqs []Request, workers int) ([]Rule, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	rules := make([]Rule, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			req := &reqs[i]
			rules[i] = b.Resolve(req.Recv, req.Name, req.StaticCtx, req.NoThrow)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rules, nil
}
