// Package future provides a deferred-value primitive for cooperative,
// single-logical-thread execution: a Future represents the eventual result of
// a computation and supports chaining continuations via Then, Catch, and
// Finally. Continuations never run inline with the call that registers or
// settles them; they are dispatched through an injected Scheduler, typically
// a microtask.Queue.
package future

// State describes the lifecycle of a Future. A future starts out Pending and
// transitions at most once to Fulfilled or Rejected.
type State int

const (
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Scheduler is the deferred-execution queue capability: Schedule runs task
// exactly once, after the caller's current execution unwinds, in FIFO order
// relative to other tasks scheduled on the same Scheduler.
type Scheduler interface {
	Schedule(task func())
}

// Thenable is any value a settling future can adopt. When a future is
// resolved or rejected with a Thenable, it does not settle with that value;
// it registers its own settlement operations as continuations and takes on
// the Thenable's eventual outcome instead.
type Thenable interface {
	// OnSettled registers continuations for the eventual outcome. Exactly one
	// of the two callbacks is invoked, exactly once. If the value is already
	// settled, the matching callback must not run inline with this call.
	OnSettled(onFulfilled func(v any), onRejected func(r any))
}

// Handler is a continuation attached via Then or Catch. Returning a non-nil
// error rejects the chained future with that error; returning a Thenable
// defers the chained future to its outcome. A nil Handler means no handler
// was supplied for that branch.
type Handler func(v any) (any, error)

type Future interface {
	Thenable

	// Then returns a future for the outcome of applying the matching handler
	// to this future's eventual result. A nil handler passes the value or
	// reason through unchanged.
	Then(onFulfilled Handler, onRejected Handler) Future

	// Catch is Then with no fulfillment handler: fulfillment forwards the
	// original value untouched.
	Catch(onRejected Handler) Future

	// Finally runs onFinally once this future settles, regardless of outcome,
	// then forwards the original outcome. A non-nil error from onFinally
	// supersedes the original outcome as the returned future's rejection
	// reason.
	Finally(onFinally func() error) Future

	// State returns the current lifecycle state.
	State() State
}

type futureImpl struct {
	scheduler Scheduler

	state State
	value any // fulfillment value or rejection reason, once settled

	// listeners registered while pending; drained in registration order the
	// instant the future settles, then released
	onFulfilled []func(v any)
	onRejected  []func(r any)
}

// New creates a pending future and invokes init synchronously, exactly once,
// with the two settlement operations. resolve and reject are the only way to
// settle the future; only the first effective call has any effect.
func New(s Scheduler, init func(resolve func(v any), reject func(r any))) Future {
	f := newFuture(s)
	if init == nil {
		panic("future: nil initializer")
	}

	init(f.resolve, f.reject)

	return f
}

// Resolve returns a future resolved with v. If v is a Thenable, the returned
// future adopts its outcome.
func Resolve(s Scheduler, v any) Future {
	f := newFuture(s)
	f.resolve(v)

	return f
}

// Reject returns a future rejected with reason r. If r is a Thenable, the
// returned future adopts its outcome.
func Reject(s Scheduler, r any) Future {
	f := newFuture(s)
	f.reject(r)

	return f
}

func newFuture(s Scheduler) *futureImpl {
	if s == nil {
		panic("future: nil scheduler")
	}

	return &futureImpl{
		scheduler: s,
	}
}

func (f *futureImpl) State() State {
	return f.state
}
