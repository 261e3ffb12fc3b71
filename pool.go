package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the parallel fan-out used when a view needs many
// unrelated sources at once. Fetches are independent and each writes its
// own result slot, so the pool is purely a latency optimization.
const DefaultWorkers = 5

// FetchAll runs one task per source key through a bounded worker pool and
// collects results by key. A failing task does not cancel its siblings:
// its key is simply absent from the result map and its error joined into
// the returned error, so callers can render the sources that did arrive.
func FetchAll[T any](ctx context.Context, workers int, tasks map[string]func(context.Context) (T, error)) (map[string]T, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	var (
		mu      sync.Mutex
		results = make(map[string]T, len(tasks))
		errs    []error
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for key, task := range tasks {
		g.Go(func() error {
			v, err := task(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return nil
			}
			results[key] = v
			return nil
		})
	}
	g.Wait()
	return results, errors.Join(errs...)
}
