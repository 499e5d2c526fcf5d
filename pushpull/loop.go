package pushpull

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

var (
	// ErrLoopRunning is returned by Run when the loop is already running.
	ErrLoopRunning = errors.New("pushpull: loop is already running")

	// ErrLoopClosed is returned for work submitted after Close.
	ErrLoopClosed = errors.New("pushpull: loop is closed")

	// ErrReentrantLoop is returned by Run and Do when called from a task
	// already executing on the loop.
	ErrReentrantLoop = errors.New("pushpull: cannot wait on the loop from within the loop")
)

type loopTask struct {
	fn   func(rs *ReactiveSystem)
	done chan error
}

// Loop serializes access to one ReactiveSystem from many goroutines. Tasks
// run one at a time on the goroutine that called Run, and the system's
// pending flush runs after every task, so all writes made by one task
// reach effects in a single flush.
type Loop struct {
	rs     *ReactiveSystem
	queue  *MicrotaskQueue
	logger *slog.Logger

	mu      sync.Mutex
	ingress []loopTask
	wake    chan struct{}

	closed    chan struct{}
	closeOnce sync.Once

	running atomic.Bool
	gid     atomic.Int64
}

// NewLoop creates a loop around a new system. WithScheduler is ignored: the
// loop supplies its own microtask queue.
func NewLoop(opts ...Option) *Loop {
	queue := NewMicrotaskQueue()
	rs := NewReactiveSystem(append(opts, WithScheduler(queue))...)
	return &Loop{
		rs:     rs,
		queue:  queue,
		logger: rs.logger,
		wake:   make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// System returns the loop's system. It must only be used from inside tasks.
func (l *Loop) System() *ReactiveSystem {
	return l.rs
}

// Run processes tasks until ctx is done or Close is called. Either way the
// loop is closed afterwards: tasks still queued fail with ErrLoopClosed and
// so does any later Submit, Do or Run.
func (l *Loop) Run(ctx context.Context) error {
	if l.onLoop() {
		return ErrReentrantLoop
	}
	if l.isClosed() {
		return ErrLoopClosed
	}
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	l.gid.Store(goid.Get())
	defer func() {
		l.gid.Store(0)
		l.running.Store(false)
	}()

	for {
		for _, t := range l.take() {
			l.execute(t)
		}
		select {
		case <-ctx.Done():
			_ = l.Close()
			l.reject()
			return ctx.Err()
		case <-l.closed:
			l.reject()
			return nil
		case <-l.wake:
		}
	}
}

// Submit queues fn without waiting for it. A panic in fn is logged and
// the loop keeps going.
func (l *Loop) Submit(fn func(rs *ReactiveSystem)) error {
	return l.push(loopTask{fn: fn})
}

// Do queues fn and waits until it and the flush after it have run. A panic
// in fn is returned as an error.
func (l *Loop) Do(ctx context.Context, fn func(rs *ReactiveSystem)) error {
	if l.onLoop() {
		return ErrReentrantLoop
	}
	t := loopTask{fn: fn, done: make(chan error, 1)}
	if err := l.push(t); err != nil {
		return err
	}
	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. Calling it again, or after the context passed to
// Run is done, returns ErrLoopClosed.
func (l *Loop) Close() error {
	err := ErrLoopClosed
	l.closeOnce.Do(func() {
		close(l.closed)
		err = nil
	})
	return err
}

func (l *Loop) push(t loopTask) error {
	l.mu.Lock()
	if l.isClosed() {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.ingress = append(l.ingress, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

func (l *Loop) take() []loopTask {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks := l.ingress
	l.ingress = nil
	return tasks
}

func (l *Loop) reject() {
	l.mu.Lock()
	tasks := l.ingress
	l.ingress = nil
	l.mu.Unlock()

	for _, t := range tasks {
		if t.done != nil {
			t.done <- ErrLoopClosed
		}
	}
}

func (l *Loop) execute(t loopTask) {
	err := l.safeExecute(func() { t.fn(l.rs) })
	if drainErr := l.safeExecute(func() { l.queue.Drain() }); err == nil {
		err = drainErr
	}
	if t.done != nil {
		t.done <- err
	}
}

func (l *Loop) safeExecute(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pushpull: loop task panicked: %w", asError(r))
			l.logger.Error("pushpull: loop task panicked", slog.Any("err", err))
		}
	}()
	fn()
	return nil
}

func (l *Loop) onLoop() bool {
	id := l.gid.Load()
	return id != 0 && id == goid.Get()
}

func (l *Loop) isClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}
