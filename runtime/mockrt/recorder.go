package mockrt

import (
	"context"
	"sync"
)

// ImplementationKind is the scripted behaviour of a member.
type ImplementationKind uint8

const (
	Unimplemented ImplementationKind = iota
	Invokes
	Returns
	Throws
)

func (k ImplementationKind) String() string {
	switch k {
	case Unimplemented:
		return "unimplemented"
	case Invokes:
		return "invokes"
	case Returns:
		return "returns"
	case Throws:
		return "throws"
	}
	return "unknown"
}

// Closure is the normalised form every shape's closure is adapted to.
type Closure[A, R any] func(ctx context.Context, args A) (R, error)

// Implementation is one of unimplemented, invokes(Fn), returns(Value) or
// throws(Err).
type Implementation[A, R any] struct {
	Kind  ImplementationKind
	Fn    Closure[A, R]
	Value R
	Err   error
}

// Outcome is what one invocation produced. Pending marks an invocation
// that has not recorded an output: still in flight, or it trapped.
type Outcome[R any] struct {
	Value   R
	Err     error
	Pending bool
}

func (o Outcome[R]) Failed() bool { return !o.Pending && o.Err != nil }

func (o Outcome[R]) Returned() bool { return !o.Pending && o.Err == nil }

// recorder is the state shared by all shapes. Closures always run outside
// the lock.
type recorder[A, R any] struct {
	desc Descriptor
	// void members treat unimplemented as a no-op
	void bool

	mu          sync.Mutex
	impl        Implementation[A, R]
	invocations []A
	// one per invocation, reserved at RecordInput time so that outputs
	// finishing out of order land at their invocation's index
	outputs []Outcome[R]
}

func newRecorder[A, R any](desc Descriptor, void bool) *recorder[A, R] {
	return &recorder[A, R]{desc: desc, void: void}
}

// Descriptor returns the member this primitive records.
func (r *recorder[A, R]) Descriptor() Descriptor { return r.desc }

// RecordInput appends args to the invocation log and returns its index.
func (r *recorder[A, R]) RecordInput(args A) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invocations = append(r.invocations, args)
	r.outputs = append(r.outputs, Outcome[R]{Pending: true})
	return len(r.invocations) - 1
}

// Perform snapshots the current implementation as a closure.
func (r *recorder[A, R]) Perform() Closure[A, R] {
	r.mu.Lock()
	impl := r.impl
	r.mu.Unlock()

	switch impl.Kind {
	case Invokes:
		if impl.Fn != nil {
			return impl.Fn
		}
	case Returns:
		return func(context.Context, A) (R, error) { return impl.Value, nil }
	case Throws:
		return func(context.Context, A) (R, error) {
			var zero R
			return zero, impl.Err
		}
	}
	desc, void := r.desc, r.void
	return func(context.Context, A) (R, error) {
		var zero R
		if !void {
			panic(&UnimplementedError{Descriptor: desc})
		}
		return zero, nil
	}
}

// RecordOutput stores the outcome of the invocation at index.
func (r *recorder[A, R]) RecordOutput(index int, out Outcome[R]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.outputs) {
		return
	}
	out.Pending = false
	r.outputs[index] = out
}

// invoke runs the full record/perform/record cycle.
func (r *recorder[A, R]) invoke(ctx context.Context, args A) (R, error) {
	idx := r.RecordInput(args)
	v, err := r.Perform()(ctx, args)
	r.RecordOutput(idx, Outcome[R]{Value: v, Err: err})
	return v, err
}

// Implementation returns the scripted behaviour.
func (r *recorder[A, R]) Implementation() Implementation[A, R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.impl
}

// SetImplementation replaces the scripted behaviour.
func (r *recorder[A, R]) SetImplementation(impl Implementation[A, R]) {
	r.mu.Lock()
	r.impl = impl
	r.mu.Unlock()
}

// Unimplemented clears the scripted behaviour.
func (r *recorder[A, R]) Unimplemented() {
	r.SetImplementation(Implementation[A, R]{})
}

func (r *recorder[A, R]) invokes(fn Closure[A, R]) {
	r.SetImplementation(Implementation[A, R]{Kind: Invokes, Fn: fn})
}

func (r *recorder[A, R]) returns(v R) {
	r.SetImplementation(Implementation[A, R]{Kind: Returns, Value: v})
}

func (r *recorder[A, R]) throws(err error) {
	r.SetImplementation(Implementation[A, R]{Kind: Throws, Err: err})
}

func (r *recorder[A, R]) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invocations)
}

// Invocations returns a copy of the argument log in call order.
func (r *recorder[A, R]) Invocations() []A {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]A, len(r.invocations))
	copy(out, r.invocations)
	return out
}

func (r *recorder[A, R]) LatestInvocation() (A, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.invocations) == 0 {
		var zero A
		return zero, false
	}
	return r.invocations[len(r.invocations)-1], true
}

// Outputs returns one outcome per invocation: Outputs()[i] belongs to
// Invocations()[i]. Invocations without a recorded output are Pending.
func (r *recorder[A, R]) Outputs() []Outcome[R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome[R], len(r.outputs))
	copy(out, r.outputs)
	return out
}

// Output returns the outcome of invocation i; ok is false when i is out of
// range or the invocation is still pending.
func (r *recorder[A, R]) Output(i int) (Outcome[R], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.outputs) || r.outputs[i].Pending {
		return Outcome[R]{Pending: true}, false
	}
	return r.outputs[i], true
}

func (r *recorder[A, R]) ReturnedValues() []R {
	var out []R
	for _, o := range r.Outputs() {
		if o.Returned() {
			out = append(out, o.Value)
		}
	}
	return out
}

func (r *recorder[A, R]) LastReturnedValue() (R, bool) {
	vals := r.ReturnedValues()
	if len(vals) == 0 {
		var zero R
		return zero, false
	}
	return vals[len(vals)-1], true
}

func (r *recorder[A, R]) ThrownErrors() []error {
	var out []error
	for _, o := range r.Outputs() {
		if o.Failed() {
			out = append(out, o.Err)
		}
	}
	return out
}

// LastThrownError is nil when nothing failed yet.
func (r *recorder[A, R]) LastThrownError() error {
	errs := r.ThrownErrors()
	if len(errs) == 0 {
		return nil
	}
	return errs[len(errs)-1]
}
