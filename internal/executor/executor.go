package executor

import (
	"sync"

	"todo-app-go/pkg/logger"
)

// NetworkThreads is the default size of the network lane.
const NetworkThreads = 3

type Executor interface {
	Execute(task func())
}

// Func adapts a plain function to Executor.
type Func func(task func())

func (f Func) Execute(task func()) {
	f(task)
}

// Inline runs every task on the calling goroutine.
var Inline Executor = Func(func(task func()) { task() })

// Pool runs tasks on a fixed number of workers pulling from one unbounded FIFO queue.
// With a single worker tasks run strictly in submission order.
type Pool struct {
	name string
	log  logger.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	wg sync.WaitGroup
}

func NewPool(name string, workers int, log logger.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.NewNop()
	}

	p := &Pool{name: name, log: log}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func NewSerial(name string, log logger.Logger) *Pool {
	return NewPool(name, 1, log)
}

// Execute never blocks. Tasks submitted after Close are dropped.
func (p *Pool) Execute(task func()) {
	p.submit(task)
}

func (p *Pool) submit(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.log.Warn("executor: task rejected after close", "lane", p.name)
		return false
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
	return true
}

// Close lets the workers drain already queued tasks and waits for them to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("executor: task panicked", "lane", p.name, "panic", r)
		}
	}()
	task()
}
