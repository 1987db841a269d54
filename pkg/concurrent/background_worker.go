package concurrent

import "sync"

type JobFunc[T any, G any] func(job T) G

// BackgroundWorker fixed pool of goroutines consuming jobs from a buffered channel.
// the result of every job is collected and returned by Close.
type BackgroundWorker[T any, G any] struct {
	workers   int
	msgC      chan T
	waitGroup sync.WaitGroup
	jobFunc   JobFunc[T, G]

	mu      sync.Mutex
	results []G
}

func NewBackgroundWorker[T any, G any](workers, buffer int, jobFunc JobFunc[T, G]) *BackgroundWorker[T, G] {
	if workers < 1 {
		workers = 1
	}
	return &BackgroundWorker[T, G]{
		workers: workers,
		msgC:    make(chan T, buffer),
		jobFunc: jobFunc,
		results: make([]G, 0, buffer),
	}
}

// TriggerProcessing blocks while the buffer is full.
func (bw *BackgroundWorker[T, G]) TriggerProcessing(jobData T) {
	bw.msgC <- jobData
}

func (bw *BackgroundWorker[T, G]) Start() {
	bw.waitGroup.Add(bw.workers)
	for i := 0; i < bw.workers; i++ {
		go func() {
			defer bw.waitGroup.Done()
			for jobData := range bw.msgC {
				res := bw.jobFunc(jobData)

				bw.mu.Lock()
				bw.results = append(bw.results, res)
				bw.mu.Unlock()
			}
		}()
	}
}

// Close stops accepting jobs, waits until every queued job is processed and returns the results
// in completion order.
func (bw *BackgroundWorker[T, G]) Close() []G {
	close(bw.msgC)
	bw.waitGroup.Wait()

	bw.mu.Lock()
	defer bw.mu.Unlock()
	return bw.results
}
