package concurrent

import (
	"sort"
	"testing"
)

func TestWorkerPoolCollectsEveryResult(t *testing.T) {
	pool := NewWorkerPool[int, int](4, 8)
	pool.Start(func(job int) int {
		return job * job
	})

	go func() {
		for i := 1; i <= 100; i++ {
			pool.AddJob(i)
		}
		pool.Close()
	}()
	go pool.Wait()

	results := make([]int, 0, 100)
	for r := range pool.CollectResults() {
		results = append(results, r)
	}

	if len(results) != 100 {
		t.Fatalf("collected %d results, want 100", len(results))
	}
	sort.Ints(results)
	for i := 1; i <= 100; i++ {
		if results[i-1] != i*i {
			t.Fatalf("results[%d] = %d, want %d", i-1, results[i-1], i*i)
		}
	}
}

func TestWorkerPoolStartEachGivesEveryWorkerOwnState(t *testing.T) {
	// each worker counts in its own accumulator; no shared state between the
	// job closures
	pool := NewWorkerPool[int, int](3, 4)
	pool.StartEach(func() JobFunc[int, int] {
		processed := 0
		return func(job int) int {
			processed++
			return processed
		}
	})

	go func() {
		for i := 0; i < 30; i++ {
			pool.AddJob(i)
		}
		pool.Close()
	}()
	go pool.Wait()

	total := 0
	for r := range pool.CollectResults() {
		total++
		if r < 1 || r > 30 {
			t.Errorf("per-worker counter = %d, outside [1, 30]", r)
		}
	}
	if total != 30 {
		t.Fatalf("collected %d results, want 30", total)
	}
}

func TestWorkerPoolDefaultsWorkerCount(t *testing.T) {
	pool := NewWorkerPool[int, int](0, 1)
	if pool.numWorkers <= 0 {
		t.Errorf("numWorkers = %d, want a positive default", pool.numWorkers)
	}
}
