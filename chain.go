package future

import (
	goerrors "github.com/go-errors/errors"
)

func (f *futureImpl) Then(onFulfilled Handler, onRejected Handler) Future {
	child := newFuture(f.scheduler)

	f.OnSettled(
		func(v any) {
			child.runHandler(onFulfilled, v, child.resolve)
		},
		func(r any) {
			child.runHandler(onRejected, r, child.reject)
		},
	)

	return child
}

func (f *futureImpl) Catch(onRejected Handler) Future {
	return f.Then(nil, onRejected)
}

func (f *futureImpl) Finally(onFinally func() error) Future {
	child := newFuture(f.scheduler)

	// Run the callback for either outcome, then forward the original value or
	// reason unchanged. A callback failure supersedes the original outcome.
	run := func(forward func(any)) func(any) {
		return func(v any) {
			if onFinally != nil {
				if err := invokeFinally(onFinally); err != nil {
					child.reject(err)
					return
				}
			}

			forward(v)
		}
	}

	f.OnSettled(run(child.resolve), run(child.reject))

	return child
}

// runHandler executes a Then/Catch handler for the outcome that occurred and
// settles the child future with its result. A nil handler forwards the
// original value or reason unchanged, fulfillment staying fulfillment and
// rejection staying rejection.
func (child *futureImpl) runHandler(h Handler, v any, forward func(any)) {
	if h == nil {
		forward(v)
		return
	}

	result, err := invokeHandler(h, v)
	if err != nil {
		child.reject(err)
		return
	}

	child.resolve(result)
}

// invokeHandler calls h, recovering panics so that a failing handler rejects
// its chained future instead of unwinding into the scheduler's task runner.
func invokeHandler(h Handler, v any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	return h(v)
}

func invokeFinally(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()

	return fn()
}

// panicError wraps a recovered panic value, capturing the stacktrace of the
// panicking handler.
func panicError(r any) error {
	return goerrors.Wrap(r, 2)
}
