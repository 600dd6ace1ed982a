// Package parallel splits elementwise work over prediction vectors across CPU cores.
//
// Workers write disjoint index ranges of caller-allocated output slices, so no
// synchronization beyond the final wait is required.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the vector length at or below which work runs on the calling goroutine.
const DefaultThreshold = 4096

// Parallelize divides items according to the number of CPU cores
// and executes fn in parallel for each range [start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// ceiling division
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when items exceeds threshold.
// A non-positive threshold selects DefaultThreshold.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}

// ForEach calls fn for every index in [0, items), in parallel above threshold.
func ForEach(items int, threshold int, fn func(i int)) {
	ParallelizeWithThreshold(items, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}
