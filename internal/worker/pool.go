// Package worker provides a bounded pool for fire-and-forget background work.
package worker

import "sync"

type task func()

type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(workers, queueSize int) *Pool {
	p := &Pool{jobs: make(chan task, queueSize)}

	for range workers {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}

	return p
}

// TrySubmit enqueues f without blocking. It reports false when the queue is
// full; callers log and drop the work rather than stall a request.
func (p *Pool) TrySubmit(f func()) bool {
	select {
	case p.jobs <- f:
		return true
	default:
		return false
	}
}

// Depth returns the number of queued jobs not yet picked up by a worker.
func (p *Pool) Depth() int {
	return len(p.jobs)
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
