package queue

import (
	"sync"
)

// Job is one staged file waiting for ingestion.
type Job struct {
	UploadID string
	Path     string
}

// Queue is a bounded in-process work queue. Enqueue never blocks; a full
// queue is reported to the caller so the HTTP layer can push back.
type Queue struct {
	mu     sync.Mutex
	jobs   chan Job
	closed bool
}

func New(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{jobs: make(chan Job, size)}
}

func (q *Queue) Enqueue(job Job) (ok, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false, true
	}
	select {
	case q.jobs <- job:
		return true, false
	default:
		return false, false
	}
}

// Jobs is the consumer side. It drains remaining jobs after Close.
func (q *Queue) Jobs() <-chan Job { return q.jobs }

func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
}
