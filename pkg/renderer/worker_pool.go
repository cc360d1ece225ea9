package renderer

import (
	"runtime"
	"sync"
)

// TileResult reports the outcome of one tile task
type TileResult struct {
	TileID  int
	Samples int
	Skipped bool // true when the render was cancelled before this tile ran
}

// WorkerPool fans tile tasks out to a fixed set of goroutines. Both
// channels are buffered for the full tile count so producers and workers
// never block on each other.
type WorkerPool struct {
	numWorkers int
	tasks      chan Tile
	results    chan TileResult
	wg         sync.WaitGroup
}

// NewWorkerPool creates a pool. Zero or negative numWorkers means one
// worker per CPU.
func NewWorkerPool(numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		tasks:      make(chan Tile, queueSize),
		results:    make(chan TileResult, queueSize),
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Start launches the workers. The render callback receives the worker
// index so each worker can hold per-worker state such as its sampler.
func (wp *WorkerPool) Start(render func(workerID int, tile Tile) TileResult) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func(workerID int) {
			defer wp.wg.Done()
			for tile := range wp.tasks {
				wp.results <- render(workerID, tile)
			}
		}(i)
	}
}

// Submit queues a tile for rendering
func (wp *WorkerPool) Submit(tile Tile) {
	wp.tasks <- tile
}

// Stop closes the task queue, waits for the workers to drain it, then
// closes the result channel so Results can be ranged over.
func (wp *WorkerPool) Stop() {
	close(wp.tasks)
	wp.wg.Wait()
	close(wp.results)
}

// Results returns the result channel. Valid to range over after Stop.
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.results
}
