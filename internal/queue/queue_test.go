package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintfeed/mintfeed/internal/errors"
	"github.com/mintfeed/mintfeed/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitializeForTests()
	m.Run()
}

func TestDispatchIsFIFO(t *testing.T) {
	q := New(time.Millisecond, time.Millisecond)

	var mu sync.Mutex
	var order []int

	chans := make([]<-chan Result, 0, 10)
	for i := 0; i < 10; i++ {
		n := i
		chans = append(chans, q.Enqueue(context.Background(), func(ctx context.Context) (any, error) {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			return n, nil
		}))
	}
	for i, done := range chans {
		res := <-done
		require.NoError(t, res.Err)
		assert.Equal(t, i, res.Value)
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestDispatchEnforcesMinGap(t *testing.T) {
	q := New(30*time.Millisecond, time.Millisecond)

	start := time.Now()
	var last <-chan Result
	for i := 0; i < 3; i++ {
		last = q.Enqueue(context.Background(), func(ctx context.Context) (any, error) {
			return nil, nil
		})
	}
	<-last

	// Three dispatches means at least two full gaps between them.
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestRateLimitTriggersCooldown(t *testing.T) {
	q := New(time.Millisecond, 80*time.Millisecond)

	first := q.Enqueue(context.Background(), func(ctx context.Context) (any, error) {
		return nil, errors.RateLimited(nil)
	})
	second := q.Enqueue(context.Background(), func(ctx context.Context) (any, error) {
		return "ok", nil
	})

	// The failing operation's error is delivered before the cooldown starts.
	res := <-first
	assert.True(t, errors.IsCode(res.Err, errors.ErrRateLimited))
	deliveredAt := time.Now()

	res = <-second
	require.NoError(t, res.Err)
	assert.Equal(t, "ok", res.Value)
	assert.GreaterOrEqual(t, time.Since(deliveredAt), 70*time.Millisecond,
		"next dispatch must wait out the cooldown")
}

func TestAbandonedCallerDoesNotBlockQueue(t *testing.T) {
	q := New(time.Millisecond, time.Millisecond)

	// Nobody ever reads this result; the buffered channel absorbs it.
	q.Enqueue(context.Background(), func(ctx context.Context) (any, error) {
		return "abandoned", nil
	})

	done := q.Enqueue(context.Background(), func(ctx context.Context) (any, error) {
		return "delivered", nil
	})

	select {
	case res := <-done:
		assert.Equal(t, "delivered", res.Value)
	case <-time.After(time.Second):
		t.Fatal("queue stalled behind an abandoned operation")
	}
}

func TestDoReturnsTypedResult(t *testing.T) {
	q := New(time.Millisecond, time.Millisecond)

	got, err := Do(context.Background(), q, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = Do(context.Background(), q, func(ctx context.Context) (int, error) {
		return 0, errors.ScanFailed(nil)
	})
	assert.True(t, err != nil && errors.IsCode(err, errors.ErrScanFailed))
}
