package mockrt

import "context"

// Properties pair a getter primitive with, for read-write ones, a setter.
// The two are independent: setting does not change what the getter returns
// unless a test scripts it that way.

func getterDesc(d Descriptor) Descriptor {
	d.Member += ".get"
	return d
}

func setterDesc(d Descriptor) Descriptor {
	d.Member += ".set"
	return d
}

type ReadOnlyProperty[V any] struct {
	Getter *Func[V]
}

func NewReadOnlyProperty[V any](desc Descriptor) *ReadOnlyProperty[V] {
	return &ReadOnlyProperty[V]{Getter: NewFunc[V](getterDesc(desc))}
}

func (p *ReadOnlyProperty[V]) Get() V { return p.Getter.Invoke() }

type ThrowingReadOnlyProperty[V any] struct {
	Getter *ThrowingFunc[V]
}

func NewThrowingReadOnlyProperty[V any](desc Descriptor) *ThrowingReadOnlyProperty[V] {
	return &ThrowingReadOnlyProperty[V]{Getter: NewThrowingFunc[V](getterDesc(desc))}
}

func (p *ThrowingReadOnlyProperty[V]) Get() (V, error) { return p.Getter.Invoke() }

type AsyncReadOnlyProperty[V any] struct {
	Getter *AsyncFunc[V]
}

func NewAsyncReadOnlyProperty[V any](desc Descriptor) *AsyncReadOnlyProperty[V] {
	return &AsyncReadOnlyProperty[V]{Getter: NewAsyncFunc[V](getterDesc(desc))}
}

func (p *AsyncReadOnlyProperty[V]) Get(ctx context.Context) V { return p.Getter.Invoke(ctx) }

type AsyncThrowingReadOnlyProperty[V any] struct {
	Getter *AsyncThrowingFunc[V]
}

func NewAsyncThrowingReadOnlyProperty[V any](desc Descriptor) *AsyncThrowingReadOnlyProperty[V] {
	return &AsyncThrowingReadOnlyProperty[V]{Getter: NewAsyncThrowingFunc[V](getterDesc(desc))}
}

func (p *AsyncThrowingReadOnlyProperty[V]) Get(ctx context.Context) (V, error) {
	return p.Getter.Invoke(ctx)
}

// Property is a synchronous read-write property.
type Property[V any] struct {
	Getter *Func[V]
	Setter *VoidMethod[V]
}

func NewProperty[V any](desc Descriptor) *Property[V] {
	return &Property[V]{
		Getter: NewFunc[V](getterDesc(desc)),
		Setter: NewVoidMethod[V](setterDesc(desc)),
	}
}

func (p *Property[V]) Get() V  { return p.Getter.Invoke() }
func (p *Property[V]) Set(v V) { p.Setter.Invoke(v) }

type ThrowingProperty[V any] struct {
	Getter *ThrowingFunc[V]
	Setter *VoidMethod[V]
}

func NewThrowingProperty[V any](desc Descriptor) *ThrowingProperty[V] {
	return &ThrowingProperty[V]{
		Getter: NewThrowingFunc[V](getterDesc(desc)),
		Setter: NewVoidMethod[V](setterDesc(desc)),
	}
}

func (p *ThrowingProperty[V]) Get() (V, error) { return p.Getter.Invoke() }
func (p *ThrowingProperty[V]) Set(v V)         { p.Setter.Invoke(v) }

type AsyncProperty[V any] struct {
	Getter *AsyncFunc[V]
	Setter *VoidMethod[V]
}

func NewAsyncProperty[V any](desc Descriptor) *AsyncProperty[V] {
	return &AsyncProperty[V]{
		Getter: NewAsyncFunc[V](getterDesc(desc)),
		Setter: NewVoidMethod[V](setterDesc(desc)),
	}
}

func (p *AsyncProperty[V]) Get(ctx context.Context) V { return p.Getter.Invoke(ctx) }
func (p *AsyncProperty[V]) Set(v V)                   { p.Setter.Invoke(v) }

type AsyncThrowingProperty[V any] struct {
	Getter *AsyncThrowingFunc[V]
	Setter *VoidMethod[V]
}

func NewAsyncThrowingProperty[V any](desc Descriptor) *AsyncThrowingProperty[V] {
	return &AsyncThrowingProperty[V]{
		Getter: NewAsyncThrowingFunc[V](getterDesc(desc)),
		Setter: NewVoidMethod[V](setterDesc(desc)),
	}
}

func (p *AsyncThrowingProperty[V]) Get(ctx context.Context) (V, error) {
	return p.Getter.Invoke(ctx)
}
func (p *AsyncThrowingProperty[V]) Set(v V) { p.Setter.Invoke(v) }
