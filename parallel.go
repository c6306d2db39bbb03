package fluvial

import (
	"runtime"
	"sync"
)

// WorkersFraction translates a fraction of the available cores into a worker
// count, never below one.
func WorkersFraction(fraction float64) int {
	n := int(float64(runtime.NumCPU()) * fraction)
	if n < 1 {
		n = 1
	}
	return n
}

// parallelMap runs fn for every index in [0, n) using the given number of
// workers. Results are gathered by the callers writing into preallocated
// slices at their own index, so output order never depends on completion
// order. The first error stops dispatch of further indices and is returned
// after all running workers finish.
func parallelMap(n, workers int, fn func(i int) error) error {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	if workers > n {
		workers = n
	}

	idx := make(chan int)
	stop := make(chan struct{})
	var once sync.Once
	var firstErr error
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				if err := fn(i); err != nil {
					once.Do(func() {
						firstErr = err
						close(stop)
					})
					return
				}
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		select {
		case idx <- i:
		case <-stop:
			break dispatch
		}
	}
	close(idx)
	wg.Wait()

	return firstErr
}
