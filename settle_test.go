package future

import (
	"testing"

	"github.com/cschleiden/go-future/microtask"
	"github.com/stretchr/testify/require"
)

func Test_AdoptionDefersSettlement(t *testing.T) {
	q := microtask.NewQueue()

	var resolveInner func(any)
	inner := New(q, func(resolve func(any), reject func(any)) {
		resolveInner = resolve
	})

	outer := Resolve(q, inner)

	// Settlement is deferred until the adopted future settles
	require.Equal(t, Pending, outer.State())

	resolveInner(42)
	require.Equal(t, Fulfilled, outer.State())
}

func Test_AdoptionFlattening(t *testing.T) {
	q := microtask.NewQueue()

	var resolveC func(any)
	c := New(q, func(resolve func(any), reject func(any)) {
		resolveC = resolve
	})

	b := Resolve(q, c)
	a := Resolve(q, b)

	var got any
	a.Then(func(v any) (any, error) {
		got = v
		return nil, nil
	}, nil)

	require.Equal(t, Pending, a.State())

	resolveC(42)
	q.Drain()

	require.Equal(t, Fulfilled, a.State())
	require.Equal(t, 42, got)
}

func Test_AdoptionOfSettledChain(t *testing.T) {
	q := microtask.NewQueue()

	// Adopting an already-settled chain flattens iteratively, without a
	// deferred hop per link
	f := Resolve(q, Resolve(q, Resolve(q, 42)))

	require.Equal(t, Fulfilled, f.State())

	var got any
	f.Then(func(v any) (any, error) {
		got = v
		return nil, nil
	}, nil)

	q.Drain()
	require.Equal(t, 42, got)
}

func Test_AdoptionOfRejectedFuture(t *testing.T) {
	q := microtask.NewQueue()

	f := Resolve(q, Reject(q, "err"))

	require.Equal(t, Rejected, f.State())
}

func Test_RejectAdoptsThenableReason_InnerRejected(t *testing.T) {
	q := microtask.NewQueue()

	var rejectInner func(any)
	inner := New(q, func(resolve func(any), reject func(any)) {
		rejectInner = reject
	})

	outer := Reject(q, inner)
	require.Equal(t, Pending, outer.State())

	rejectInner("err")
	require.Equal(t, Rejected, outer.State())
}

func Test_RejectAdoptsThenableReason_InnerFulfilled(t *testing.T) {
	q := microtask.NewQueue()

	var resolveInner func(any)
	inner := New(q, func(resolve func(any), reject func(any)) {
		resolveInner = resolve
	})

	// Adoption follows the inner future's outcome unconditionally, so a
	// rejection reason that fulfills turns into fulfillment
	outer := Reject(q, inner)
	require.Equal(t, Pending, outer.State())

	resolveInner(42)
	require.Equal(t, Fulfilled, outer.State())
}

// fakeThenable is a minimal foreign Thenable implementation
type fakeThenable struct {
	onFulfilled func(v any)
	onRejected  func(r any)
}

func (ft *fakeThenable) OnSettled(onFulfilled func(v any), onRejected func(r any)) {
	ft.onFulfilled = onFulfilled
	ft.onRejected = onRejected
}

func Test_AdoptionOfForeignThenable(t *testing.T) {
	q := microtask.NewQueue()

	ft := &fakeThenable{}
	f := Resolve(q, ft)

	require.Equal(t, Pending, f.State())
	require.NotNil(t, ft.onFulfilled)
	require.NotNil(t, ft.onRejected)

	ft.onFulfilled(42)
	require.Equal(t, Fulfilled, f.State())
}

func Test_ListenerRegistrationOrder(t *testing.T) {
	q := microtask.NewQueue()

	var resolveF func(any)
	f := New(q, func(resolve func(any), reject func(any)) {
		resolveF = resolve
	})

	order := []string{}
	f.Then(func(v any) (any, error) {
		order = append(order, "L1")
		return nil, nil
	}, nil)
	f.Then(func(v any) (any, error) {
		order = append(order, "L2")
		return nil, nil
	}, nil)

	resolveF(1)

	require.Equal(t, []string{"L1", "L2"}, order)
}

func Test_PendingListenersFireInlineWithSettlement(t *testing.T) {
	q := microtask.NewQueue()

	var resolveF func(any)
	f := New(q, func(resolve func(any), reject func(any)) {
		resolveF = resolve
	})

	hit := false
	f.Then(func(v any) (any, error) {
		hit = true
		return nil, nil
	}, nil)

	// No queue hop for listeners registered before settlement
	resolveF(1)
	require.True(t, hit)
	require.Equal(t, 0, q.Len())
}
