package blockfaces

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/32bitkid/blockfaces/block"
	"github.com/32bitkid/blockfaces/library"
)

// RenderBatch renders blocks concurrently against one shared library.
// Results are in input order. The first failure cancels the remaining
// renders and is returned.
func RenderBatch(ctx context.Context, blocks []block.Digest, lib *library.Library, mods Modifiers, options ...Options) ([]*Result, error) {
	s := collect(options)
	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]*Result, len(blocks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range blocks {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Render(blocks[i], lib, mods, options...)
			if err != nil {
				return fmt.Errorf("block %d (%s): %w", blocks[i].Number, blocks[i].Hash, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
