package bench

import "sync"

// runPool executes jobs with at most maxWorkers concurrently. Each job
// writes to its own pre-assigned cell slot, so no result synchronization
// is needed beyond the WaitGroup.
func runPool(maxWorkers int, jobs []func()) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxWorkers)

	for _, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j func()) {
			defer wg.Done()
			defer func() { <-sem }()
			j()
		}(job)
	}
	wg.Wait()
}
