package pushpull

// Scheduler runs a task later, after the code that requested it has
// returned. A ReactiveSystem uses it to coalesce the writes of one turn into
// a single flush.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(task func())

func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// MicrotaskQueue is a FIFO of tasks run when the owner of the queue drains
// it, typically once per turn of an event loop. It is not safe for
// concurrent use.
type MicrotaskQueue struct {
	tasks []func()
}

func NewMicrotaskQueue() *MicrotaskQueue {
	return &MicrotaskQueue{
		tasks: make([]func(), 0, 64),
	}
}

func (q *MicrotaskQueue) Schedule(task func()) {
	q.tasks = append(q.tasks, task)
}

// Len returns the number of queued tasks.
func (q *MicrotaskQueue) Len() int {
	return len(q.tasks)
}

// Drain runs queued tasks until the queue is empty, including tasks queued
// by the tasks it runs, and returns how many ran.
func (q *MicrotaskQueue) Drain() int {
	executed := 0
	for len(q.tasks) > 0 {
		t := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]

		t()
		executed++
	}
	q.tasks = q.tasks[:0]
	return executed
}
