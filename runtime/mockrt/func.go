package mockrt

import "context"

// The Func family mirrors the Method family for members without parameters.
// Invocations of a Func are logged as NoArgs; CallCount is usually what a
// test wants.

type Func[R any] struct {
	*recorder[NoArgs, R]
}

func NewFunc[R any](desc Descriptor) *Func[R] {
	return &Func[R]{newRecorder[NoArgs, R](desc, false)}
}

func (f *Func[R]) Invokes(fn func() R) {
	f.invokes(func(context.Context, NoArgs) (R, error) { return fn(), nil })
}

func (f *Func[R]) Returns(v R) { f.returns(v) }

func (f *Func[R]) Invoke() R {
	v, _ := f.invoke(context.Background(), NoArgs{})
	return v
}

type ThrowingFunc[R any] struct {
	*recorder[NoArgs, R]
}

func NewThrowingFunc[R any](desc Descriptor) *ThrowingFunc[R] {
	return &ThrowingFunc[R]{newRecorder[NoArgs, R](desc, false)}
}

func (f *ThrowingFunc[R]) Invokes(fn func() (R, error)) {
	f.invokes(func(context.Context, NoArgs) (R, error) { return fn() })
}

func (f *ThrowingFunc[R]) Returns(v R)      { f.returns(v) }
func (f *ThrowingFunc[R]) Throws(err error) { f.throws(err) }

func (f *ThrowingFunc[R]) Invoke() (R, error) {
	return f.invoke(context.Background(), NoArgs{})
}

type AsyncFunc[R any] struct {
	*recorder[NoArgs, R]
}

func NewAsyncFunc[R any](desc Descriptor) *AsyncFunc[R] {
	return &AsyncFunc[R]{newRecorder[NoArgs, R](desc, false)}
}

func (f *AsyncFunc[R]) Invokes(fn func(context.Context) R) {
	f.invokes(func(ctx context.Context, _ NoArgs) (R, error) { return fn(ctx), nil })
}

func (f *AsyncFunc[R]) Returns(v R) { f.returns(v) }

func (f *AsyncFunc[R]) Invoke(ctx context.Context) R {
	v, _ := f.invoke(ctx, NoArgs{})
	return v
}

type AsyncThrowingFunc[R any] struct {
	*recorder[NoArgs, R]
}

func NewAsyncThrowingFunc[R any](desc Descriptor) *AsyncThrowingFunc[R] {
	return &AsyncThrowingFunc[R]{newRecorder[NoArgs, R](desc, false)}
}

func (f *AsyncThrowingFunc[R]) Invokes(fn func(context.Context) (R, error)) {
	f.invokes(func(ctx context.Context, _ NoArgs) (R, error) { return fn(ctx) })
}

func (f *AsyncThrowingFunc[R]) Returns(v R)      { f.returns(v) }
func (f *AsyncThrowingFunc[R]) Throws(err error) { f.throws(err) }

func (f *AsyncThrowingFunc[R]) Invoke(ctx context.Context) (R, error) {
	return f.invoke(ctx, NoArgs{})
}

type VoidFunc struct {
	*recorder[NoArgs, Void]
}

func NewVoidFunc(desc Descriptor) *VoidFunc {
	return &VoidFunc{newRecorder[NoArgs, Void](desc, true)}
}

func (f *VoidFunc) Invokes(fn func()) {
	f.invokes(func(context.Context, NoArgs) (Void, error) {
		fn()
		return Void{}, nil
	})
}

func (f *VoidFunc) Invoke() {
	f.invoke(context.Background(), NoArgs{})
}

type VoidThrowingFunc struct {
	*recorder[NoArgs, Void]
}

func NewVoidThrowingFunc(desc Descriptor) *VoidThrowingFunc {
	return &VoidThrowingFunc{newRecorder[NoArgs, Void](desc, true)}
}

func (f *VoidThrowingFunc) Invokes(fn func() error) {
	f.invokes(func(context.Context, NoArgs) (Void, error) { return Void{}, fn() })
}

func (f *VoidThrowingFunc) Throws(err error) { f.throws(err) }

func (f *VoidThrowingFunc) Invoke() error {
	_, err := f.invoke(context.Background(), NoArgs{})
	return err
}

type AsyncVoidFunc struct {
	*recorder[NoArgs, Void]
}

func NewAsyncVoidFunc(desc Descriptor) *AsyncVoidFunc {
	return &AsyncVoidFunc{newRecorder[NoArgs, Void](desc, true)}
}

func (f *AsyncVoidFunc) Invokes(fn func(context.Context)) {
	f.invokes(func(ctx context.Context, _ NoArgs) (Void, error) {
		fn(ctx)
		return Void{}, nil
	})
}

func (f *AsyncVoidFunc) Invoke(ctx context.Context) {
	f.invoke(ctx, NoArgs{})
}

type AsyncVoidThrowingFunc struct {
	*recorder[NoArgs, Void]
}

func NewAsyncVoidThrowingFunc(desc Descriptor) *AsyncVoidThrowingFunc {
	return &AsyncVoidThrowingFunc{newRecorder[NoArgs, Void](desc, true)}
}

func (f *AsyncVoidThrowingFunc) Invokes(fn func(context.Context) error) {
	f.invokes(func(ctx context.Context, _ NoArgs) (Void, error) { return Void{}, fn(ctx) })
}

func (f *AsyncVoidThrowingFunc) Throws(err error) { f.throws(err) }

func (f *AsyncVoidThrowingFunc) Invoke(ctx context.Context) error {
	_, err := f.invoke(ctx, NoArgs{})
	return err
}
