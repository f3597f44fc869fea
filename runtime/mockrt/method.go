package mockrt

import "context"

// Method records a synchronous, non-throwing member with arguments A that
// returns R.
type Method[A, R any] struct {
	*recorder[A, R]
}

func NewMethod[A, R any](desc Descriptor) *Method[A, R] {
	return &Method[A, R]{newRecorder[A, R](desc, false)}
}

func (m *Method[A, R]) Invokes(fn func(A) R) {
	m.invokes(func(_ context.Context, a A) (R, error) { return fn(a), nil })
}

func (m *Method[A, R]) Returns(v R) { m.returns(v) }

func (m *Method[A, R]) Invoke(args A) R {
	v, _ := m.invoke(context.Background(), args)
	return v
}

// ThrowingMethod records a synchronous member that may fail.
type ThrowingMethod[A, R any] struct {
	*recorder[A, R]
}

func NewThrowingMethod[A, R any](desc Descriptor) *ThrowingMethod[A, R] {
	return &ThrowingMethod[A, R]{newRecorder[A, R](desc, false)}
}

func (m *ThrowingMethod[A, R]) Invokes(fn func(A) (R, error)) {
	m.invokes(func(_ context.Context, a A) (R, error) { return fn(a) })
}

func (m *ThrowingMethod[A, R]) Returns(v R)      { m.returns(v) }
func (m *ThrowingMethod[A, R]) Throws(err error) { m.throws(err) }

func (m *ThrowingMethod[A, R]) Invoke(args A) (R, error) {
	return m.invoke(context.Background(), args)
}

// AsyncMethod records a member that runs under a context.
type AsyncMethod[A, R any] struct {
	*recorder[A, R]
}

func NewAsyncMethod[A, R any](desc Descriptor) *AsyncMethod[A, R] {
	return &AsyncMethod[A, R]{newRecorder[A, R](desc, false)}
}

func (m *AsyncMethod[A, R]) Invokes(fn func(context.Context, A) R) {
	m.invokes(func(ctx context.Context, a A) (R, error) { return fn(ctx, a), nil })
}

func (m *AsyncMethod[A, R]) Returns(v R) { m.returns(v) }

func (m *AsyncMethod[A, R]) Invoke(ctx context.Context, args A) R {
	v, _ := m.invoke(ctx, args)
	return v
}

// AsyncThrowingMethod records a member that runs under a context and may
// fail.
type AsyncThrowingMethod[A, R any] struct {
	*recorder[A, R]
}

func NewAsyncThrowingMethod[A, R any](desc Descriptor) *AsyncThrowingMethod[A, R] {
	return &AsyncThrowingMethod[A, R]{newRecorder[A, R](desc, false)}
}

func (m *AsyncThrowingMethod[A, R]) Invokes(fn func(context.Context, A) (R, error)) {
	m.invokes(fn)
}

func (m *AsyncThrowingMethod[A, R]) Returns(v R)      { m.returns(v) }
func (m *AsyncThrowingMethod[A, R]) Throws(err error) { m.throws(err) }

func (m *AsyncThrowingMethod[A, R]) Invoke(ctx context.Context, args A) (R, error) {
	return m.invoke(ctx, args)
}

// VoidMethod records a member that produces nothing. Unimplemented is a
// no-op.
type VoidMethod[A any] struct {
	*recorder[A, Void]
}

func NewVoidMethod[A any](desc Descriptor) *VoidMethod[A] {
	return &VoidMethod[A]{newRecorder[A, Void](desc, true)}
}

func (m *VoidMethod[A]) Invokes(fn func(A)) {
	m.invokes(func(_ context.Context, a A) (Void, error) {
		fn(a)
		return Void{}, nil
	})
}

func (m *VoidMethod[A]) Invoke(args A) {
	m.invoke(context.Background(), args)
}

type VoidThrowingMethod[A any] struct {
	*recorder[A, Void]
}

func NewVoidThrowingMethod[A any](desc Descriptor) *VoidThrowingMethod[A] {
	return &VoidThrowingMethod[A]{newRecorder[A, Void](desc, true)}
}

func (m *VoidThrowingMethod[A]) Invokes(fn func(A) error) {
	m.invokes(func(_ context.Context, a A) (Void, error) { return Void{}, fn(a) })
}

func (m *VoidThrowingMethod[A]) Throws(err error) { m.throws(err) }

func (m *VoidThrowingMethod[A]) Invoke(args A) error {
	_, err := m.invoke(context.Background(), args)
	return err
}

type AsyncVoidMethod[A any] struct {
	*recorder[A, Void]
}

func NewAsyncVoidMethod[A any](desc Descriptor) *AsyncVoidMethod[A] {
	return &AsyncVoidMethod[A]{newRecorder[A, Void](desc, true)}
}

func (m *AsyncVoidMethod[A]) Invokes(fn func(context.Context, A)) {
	m.invokes(func(ctx context.Context, a A) (Void, error) {
		fn(ctx, a)
		return Void{}, nil
	})
}

func (m *AsyncVoidMethod[A]) Invoke(ctx context.Context, args A) {
	m.invoke(ctx, args)
}

type AsyncVoidThrowingMethod[A any] struct {
	*recorder[A, Void]
}

func NewAsyncVoidThrowingMethod[A any](desc Descriptor) *AsyncVoidThrowingMethod[A] {
	return &AsyncVoidThrowingMethod[A]{newRecorder[A, Void](desc, true)}
}

func (m *AsyncVoidThrowingMethod[A]) Invokes(fn func(context.Context, A) error) {
	m.invokes(func(ctx context.Context, a A) (Void, error) { return Void{}, fn(ctx, a) })
}

func (m *AsyncVoidThrowingMethod[A]) Throws(err error) { m.throws(err) }

func (m *AsyncVoidThrowingMethod[A]) Invoke(ctx context.Context, args A) error {
	_, err := m.invoke(ctx, args)
	return err
}
