// Package workerpool runs a function over a list of items with bounded concurrency.
package workerpool

import (
	"context"
	"sync"
)

// Process calls process for every item on at most workerCount goroutines. The first error
// cancels the context handed to the remaining calls, stops the dispatch and is returned.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	dispatch(ctx, workerCount, len(items), func(ctx context.Context, i int) {
		if err := process(ctx, items[i]); err != nil {
			fail(err)
		}
	})

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Map calls fn for every item on at most workerCount goroutines and returns the results in
// item order. Items left when ctx is done are still passed to fn, which sees the done context.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) R,
) []R {
	results := make([]R, len(items))
	dispatch(context.WithoutCancel(ctx), workerCount, len(items), func(_ context.Context, i int) {
		results[i] = fn(ctx, items[i])
	})
	return results
}

// dispatch feeds the indexes 0..n-1 to the workers until ctx is done and waits for them.
// Indexes received after ctx is done are skipped.
func dispatch(ctx context.Context, workerCount, n int, work func(context.Context, int)) {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > n {
		workerCount = n
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					continue
				}
				work(ctx, i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
}
