package mockrt

import "fmt"

// Void is the result type of members that produce nothing.
type Void = struct{}

// NoArgs is the argument type of members without parameters.
type NoArgs = struct{}

// Descriptor names the member a primitive records, for diagnostics.
type Descriptor struct {
	Owner  string
	Member string
}

func (d Descriptor) String() string {
	if d.Owner == "" {
		return d.Member
	}
	return d.Owner + "." + d.Member
}

// UnimplementedError is the panic value of a value-producing member invoked
// before anything was scripted.
type UnimplementedError struct {
	Descriptor Descriptor
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("mockrt: %s is unimplemented; script it with Invokes or Returns", e.Descriptor)
}

// CastError is the panic value of Cast.
type CastError struct {
	Descriptor Descriptor
	Expected   string
	Actual     string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Descriptor, e.Expected, e.Actual)
}

// Cast narrows an erased result back to the type the caller asked for. A
// mismatch means the double was scripted with a value of the wrong
// instantiation, so it panics.
func Cast[T any](raw any, desc Descriptor, expected string) T {
	if v, ok := raw.(T); ok {
		return v
	}
	var zero T
	if raw == nil && any(zero) == nil {
		// nil for an interface-typed result
		return zero
	}
	panic(&CastError{Descriptor: desc, Expected: expected, Actual: fmt.Sprintf("%T", raw)})
}
