package workerpool_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/batchauction/dexclient/domain/workerpool"
)

func TestSerialQueueRunsInSubmissionOrder(t *testing.T) {
	queue := NewSerialQueue[string]()

	var (
		mu       sync.Mutex
		executed []int
	)

	for i := 0; i < 100; i++ {
		i := i
		queue.Submit("owner", func() {
			// Earlier tasks sleeping must not let later ones overtake them.
			if i%10 == 0 {
				time.Sleep(time.Millisecond)
			}
			mu.Lock()
			executed = append(executed, i)
			mu.Unlock()
		})
	}

	queue.Wait()

	require.Len(t, executed, 100)
	for i, v := range executed {
		require.Equal(t, i, v)
	}
	require.Equal(t, 0, queue.Len("owner"))
}

func TestSerialQueueKeysRunConcurrently(t *testing.T) {
	queue := NewSerialQueue[int]()

	release := make(chan struct{})
	secondDone := make(chan struct{})

	queue.Submit(1, func() {
		<-release
	})
	queue.Submit(2, func() {
		close(secondDone)
	})

	select {
	case <-secondDone:
	case <-time.After(time.Second):
		t.Fatal("job of an independent key was blocked")
	}

	require.Equal(t, 1, queue.Len(1))

	close(release)
	queue.Wait()
}

func TestEnqueueResult(t *testing.T) {
	queue := NewSerialQueue[string]()

	resultChan := Enqueue(queue, "key", Job[int]{Task: func() (int, error) { return 42, nil }})

	select {
	case result := <-resultChan:
		require.NoError(t, result.Err)
		require.Equal(t, 42, result.Result)
	case <-time.After(time.Second):
		t.Fatal("job result was not received in time")
	}
}

func TestEnqueueError(t *testing.T) {
	queue := NewSerialQueue[string]()

	result := <-Enqueue(queue, "key", Job[int]{Task: func() (int, error) { return 0, errors.New("test error") }})
	require.EqualError(t, result.Err, "test error")
}

func TestEnqueuePanicDoesNotStopQueue(t *testing.T) {
	queue := NewSerialQueue[string]()

	panicked := Enqueue(queue, "key", Job[int]{Task: func() (int, error) { panic("boom") }})
	next := Enqueue(queue, "key", Job[int]{Task: func() (int, error) { return 7, nil }})

	result := <-panicked
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "boom")

	result = <-next
	require.NoError(t, result.Err)
	require.Equal(t, 7, result.Result)
}
