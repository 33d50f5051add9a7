package workerpool

import (
	"fmt"
	"sync"
)

// Job represents the job to be run
type Job[T any] struct {
	Task func() (T, error)
}

// Result represents the result of a job
type JobResult[T any] struct {
	Result T
	Err    error
}

// SerialQueue runs the jobs submitted under the same key one at a time,
// in submission order. Jobs of different keys run concurrently.
//
// A worker goroutine exists only while a key has queued jobs.
type SerialQueue[K comparable] struct {
	mu     sync.Mutex
	queues map[K]*keyQueue
	wg     sync.WaitGroup
}

type keyQueue struct {
	tasks []func()
}

// NewSerialQueue returns an empty queue.
func NewSerialQueue[K comparable]() *SerialQueue[K] {
	return &SerialQueue[K]{
		queues: map[K]*keyQueue{},
	}
}

// Submit appends task to the queue of key.
func (q *SerialQueue[K]) Submit(key K, task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kq, ok := q.queues[key]
	if ok {
		kq.tasks = append(kq.tasks, task)
		return
	}

	kq = &keyQueue{tasks: []func(){task}}
	q.queues[key] = kq

	q.wg.Add(1)
	go q.drain(key, kq)
}

// Wait blocks until every submitted task has run.
func (q *SerialQueue[K]) Wait() {
	q.wg.Wait()
}

// Len returns the number of tasks queued for key, including the running one.
func (q *SerialQueue[K]) Len(key K) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kq, ok := q.queues[key]
	if !ok {
		return 0
	}
	return len(kq.tasks)
}

func (q *SerialQueue[K]) drain(key K, kq *keyQueue) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		if len(kq.tasks) == 0 {
			delete(q.queues, key)
			q.mu.Unlock()
			return
		}
		task := kq.tasks[0]
		q.mu.Unlock()

		task()

		q.mu.Lock()
		kq.tasks[0] = nil
		kq.tasks = kq.tasks[1:]
		q.mu.Unlock()
	}
}

// Enqueue submits job under key and returns a channel receiving its result.
// A panicking job is reported as an error and does not stop the queue.
func Enqueue[K comparable, T any](q *SerialQueue[K], key K, job Job[T]) <-chan JobResult[T] {
	resultChan := make(chan JobResult[T], 1)

	q.Submit(key, func() {
		var result JobResult[T]
		defer func() {
			if r := recover(); r != nil {
				result = JobResult[T]{Err: fmt.Errorf("job panicked: %v", r)}
			}
			resultChan <- result
		}()

		res, err := job.Task()
		result = JobResult[T]{Result: res, Err: err}
	})

	return resultChan
}
