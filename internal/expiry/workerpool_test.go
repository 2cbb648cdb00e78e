package expiry

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_RunsTasks(t *testing.T) {
	wp := NewWorkerPool(4, 16)

	var ran int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := wp.AddTask(context.Background(), func() error {
			defer wg.Done()
			atomic.AddInt64(&ran, 1)
			return nil
		})
		assert.NoError(t, err)
	}

	wg.Wait()
	wp.Close()
	assert.Equal(t, int64(10), atomic.LoadInt64(&ran))
}

func TestWorkerPool_AddTaskHonorsContext(t *testing.T) {
	wp := NewWorkerPool(0, 1)
	defer wp.Close()

	assert.NoError(t, wp.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := wp.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorkerPool_CloseIsIdempotent(t *testing.T) {
	wp := NewWorkerPool(1, 1)
	wp.Close()
	assert.NotPanics(t, wp.Close)
}
