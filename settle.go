package future

func (f *futureImpl) resolve(v any) {
	f.settle(Fulfilled, v)
}

func (f *futureImpl) reject(r any) {
	f.settle(Rejected, r)
}

// settle attempts the Pending -> target transition with the given value or
// reason. Thenable values are adopted instead of stored: the future defers
// its own settlement to the Thenable's eventual outcome, whichever kind that
// turns out to be. Chains of already-settled futures are flattened
// iteratively so long adoption chains cannot grow the call stack.
func (f *futureImpl) settle(target State, v any) {
	for {
		inner, ok := v.(*futureImpl)
		if !ok || inner.state == Pending {
			break
		}

		target, v = inner.state, inner.value
	}

	if t, ok := v.(Thenable); ok {
		t.OnSettled(f.resolve, f.reject)
		return
	}

	if f.state != Pending {
		// Already settled, later calls are ignored
		return
	}

	f.state = target
	f.value = v

	var listeners []func(any)
	if target == Fulfilled {
		listeners = f.onFulfilled
	} else {
		listeners = f.onRejected
	}

	// Release both lists before draining; registrations made from inside a
	// listener go through the settled path and hit the scheduler instead.
	f.onFulfilled = nil
	f.onRejected = nil

	for _, l := range listeners {
		l(v)
	}
}

// OnSettled implements Thenable. Listeners registered while pending fire
// inline with the settlement call, in registration order. Once the future is
// settled, the matching callback is dispatched through the scheduler so that
// it never runs before the registering call returns.
func (f *futureImpl) OnSettled(onFulfilled func(v any), onRejected func(r any)) {
	if onFulfilled == nil {
		onFulfilled = func(any) {}
	}

	if onRejected == nil {
		onRejected = func(any) {}
	}

	switch f.state {
	case Pending:
		f.onFulfilled = append(f.onFulfilled, onFulfilled)
		f.onRejected = append(f.onRejected, onRejected)

	case Fulfilled:
		v := f.value
		f.scheduler.Schedule(func() {
			onFulfilled(v)
		})

	case Rejected:
		r := f.value
		f.scheduler.Schedule(func() {
			onRejected(r)
		})
	}
}
