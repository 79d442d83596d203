package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSerialRunsInOrder(t *testing.T) {
	pool := NewSerial("main", nil)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 50; i++ {
		i := i
		pool.Execute(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	pool.Close()

	require.Len(t, order, 50)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestSerialAllowsSelfPosting(t *testing.T) {
	pool := NewSerial("main", nil)
	done := make(chan struct{})

	pool.Execute(func() {
		pool.Execute(func() {
			close(done)
		})
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested task never ran")
	}
	pool.Close()
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool("network", 3, nil)

	var (
		running int32
		peak    int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		pool.Execute(func() {
			defer wg.Done()
			now := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if now <= old || atomic.CompareAndSwapInt32(&peak, old, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		})
	}
	wg.Wait()
	pool.Close()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool := NewSerial("disk", nil)
	done := make(chan struct{})

	pool.Execute(func() { panic("boom") })
	pool.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lane stopped after panic")
	}
	pool.Close()
}

func TestCloseDrainsQueueAndRejectsLateTasks(t *testing.T) {
	pool := NewSerial("disk", nil)
	var ran int32

	for i := 0; i < 10; i++ {
		pool.Execute(func() { atomic.AddInt32(&ran, 1) })
	}
	pool.Close()
	pool.Execute(func() { atomic.AddInt32(&ran, 100) })
	pool.Close()

	assert.Equal(t, int32(10), atomic.LoadInt32(&ran))
}

func TestImmediateLanesRunInline(t *testing.T) {
	lanes := Immediate()
	ran := false

	lanes.DiskIO.Execute(func() {
		lanes.MainThread.Execute(func() { ran = true })
	})

	assert.True(t, ran)
	lanes.Close()
}

func TestLanesDeliverAcrossLanes(t *testing.T) {
	lanes := New(2, nil)
	result := make(chan string, 1)

	lanes.NetworkIO.Execute(func() {
		lanes.MainThread.Execute(func() { result <- "delivered" })
	})

	select {
	case got := <-result:
		assert.Equal(t, "delivered", got)
	case <-time.After(time.Second):
		t.Fatal("result never reached main lane")
	}
	lanes.Close()
}

func TestCloseWaitsForCrossLaneHandOffs(t *testing.T) {
	lanes := New(1, nil)
	var landed atomic.Bool

	lanes.NetworkIO.Execute(func() {
		time.Sleep(20 * time.Millisecond)
		lanes.MainThread.Execute(func() {
			lanes.DiskIO.Execute(func() { landed.Store(true) })
		})
	})
	lanes.Close()

	assert.True(t, landed.Load(), "disk work posted from main after close began must still run")
	assert.Zero(t, lanes.Pending())
}

func TestShutdownReportsDeadline(t *testing.T) {
	lanes := New(1, nil)
	release := make(chan struct{})
	lanes.NetworkIO.Execute(func() { <-release })

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := lanes.Shutdown(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLanesCountPendingWork(t *testing.T) {
	lanes := New(1, nil)
	release := make(chan struct{})
	lanes.DiskIO.Execute(func() { <-release })
	lanes.DiskIO.Execute(func() {})

	assert.Equal(t, 2, lanes.Pending())
	close(release)
	lanes.Close()
	assert.Zero(t, lanes.Pending())
}
