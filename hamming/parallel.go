package hamming

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minGroupsPerWorker keeps small inputs on a single goroutine.
const minGroupsPerWorker = 1024

// CorrectParallel produces the same result as Correct, but splits the groups
// into contiguous runs and corrects the runs concurrently.  If workers <= 0,
// runtime.NumCPU() is used.
//
// The only error returned is ctx.Err() if ctx is cancelled before every run
// finishes.
func CorrectParallel(ctx context.Context, bits []byte, workers int) ([]byte, []int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	numGroups := len(bits) / GroupSize
	if limit := (numGroups + minGroupsPerWorker - 1) / minGroupsPerWorker; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		corrected, positions := Correct(bits)
		return corrected, positions, nil
	}

	corrected := make([]byte, numGroups*GroupSize)
	perWorker := make([][]int, workers)
	runLen := (numGroups + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		first := w * runLen
		last := first + runLen
		if last > numGroups {
			last = numGroups
		}
		if first >= last {
			continue
		}
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			perWorker[w] = correctRange(corrected, bits, first, last, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var positions []int
	for _, list := range perWorker {
		positions = append(positions, list...)
	}
	return corrected, positions, nil
}
