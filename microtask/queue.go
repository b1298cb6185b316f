// Package microtask provides a FIFO deferred-execution queue for cooperative,
// single-logical-thread scheduling. It implements the Scheduler capability
// consumed by the future package and is driven explicitly via Step or Drain,
// which makes continuation ordering fully deterministic in tests.
package microtask

// Queue is a FIFO queue of zero-argument tasks. Each scheduled task runs
// exactly once, in the order submitted. Queue is not safe for concurrent use;
// it belongs to a single logical thread.
type Queue struct {
	tasks   []func()
	running bool
}

func NewQueue() *Queue {
	return &Queue{
		tasks: make([]func(), 0),
	}
}

// Schedule appends task to the queue. It never runs task inline; execution
// happens in a later Step or Drain call. Scheduling from within a running
// task is allowed and keeps FIFO order.
func (q *Queue) Schedule(task func()) {
	if task == nil {
		panic("microtask: nil task")
	}

	q.tasks = append(q.tasks, task)
}

// Step runs the oldest pending task, if any, and reports whether one ran.
func (q *Queue) Step() bool {
	if q.running {
		panic("microtask: reentrant queue execution")
	}

	if len(q.tasks) == 0 {
		return false
	}

	task := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]

	q.running = true
	defer func() {
		q.running = false
	}()

	task()

	return true
}

// Drain runs tasks in FIFO order until the queue is empty, including tasks
// scheduled while draining. It returns the number of tasks run.
func (q *Queue) Drain() int {
	n := 0
	for q.Step() {
		n++
	}

	return n
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}
