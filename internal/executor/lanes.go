package executor

import (
	"context"
	"fmt"

	"todo-app-go/pkg/idling"
	"todo-app-go/pkg/logger"
)

// Lanes groups the executors the stores dispatch onto. Keeping disk and network work on
// separate lanes stops slow remote calls from starving local reads. Every callback and
// every cache mutation happens on MainThread.
type Lanes struct {
	DiskIO     Executor
	NetworkIO  Executor
	MainThread Executor

	pools []*Pool
	// inflight counts tasks queued or running on any lane. A task that posts follow-up
	// work does so before it finishes, so zero means no hand-off is pending anywhere.
	inflight *idling.Resource
}

func New(networkThreads int, log logger.Logger) *Lanes {
	log = logger.Component(log, "executor")
	if networkThreads < 1 {
		networkThreads = NetworkThreads
	}

	disk := NewSerial("disk", log)
	network := NewPool("network", networkThreads, log)
	main := NewSerial("main", log)
	inflight := idling.New("lanes")

	return &Lanes{
		DiskIO:     trackedLane{pool: disk, inflight: inflight},
		NetworkIO:  trackedLane{pool: network, inflight: inflight},
		MainThread: trackedLane{pool: main, inflight: inflight},
		pools:      []*Pool{disk, network, main},
		inflight:   inflight,
	}
}

// Immediate returns lanes that run everything inline, which makes store round trips
// synchronous in tests.
func Immediate() *Lanes {
	return &Lanes{
		DiskIO:     Inline,
		NetworkIO:  Inline,
		MainThread: Inline,
	}
}

// Pending reports how many tasks are queued or running across all lanes.
func (l *Lanes) Pending() int {
	if l.inflight == nil {
		return 0
	}
	return l.inflight.Pending()
}

// Shutdown waits until no lane has queued or running work, including work posted from
// one lane to another, and then stops the workers. When ctx ends first the lanes are
// stopped anyway and cross-lane work posted after that point is dropped.
// Must not be called from a lane.
func (l *Lanes) Shutdown(ctx context.Context) error {
	var drainErr error
	if l.inflight != nil {
		if err := l.inflight.WaitIdle(ctx); err != nil {
			drainErr = fmt.Errorf("drain lanes (%d pending): %w", l.inflight.Pending(), err)
		}
	}

	for _, pool := range l.pools {
		pool.Close()
	}
	return drainErr
}

// Close is Shutdown without a deadline.
func (l *Lanes) Close() {
	_ = l.Shutdown(context.Background())
}

type trackedLane struct {
	pool     *Pool
	inflight *idling.Resource
}

func (t trackedLane) Execute(task func()) {
	t.inflight.Increment()
	accepted := t.pool.submit(func() {
		defer t.inflight.Decrement()
		task()
	})
	if !accepted {
		t.inflight.Decrement()
	}
}
