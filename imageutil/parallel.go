package imageutil

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker keeps tiny images on a single goroutine.
const minRowsPerWorker = 16

// parallelRows calls fn over contiguous row ranges [start, end) covering
// [0, height). Each range is handled by one goroutine; fn must only write
// rows inside its own range. Returns after every range completes.
func parallelRows(height int, fn func(start, end int)) {
	if height <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), (height+minRowsPerWorker-1)/minRowsPerWorker)
	if workers <= 1 {
		fn(0, height)
		return
	}

	chunk := (height + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < height; start += chunk {
		end := min(start+chunk, height)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
