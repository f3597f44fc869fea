// Package mockrt holds the runtime primitives generated doubles are built
// on. Every member of a double owns exactly one primitive; the primitive logs
// the arguments of each call, resolves the scripted implementation and
// records what came out.
//
// Shapes follow the member's signature. "Async" primitives take a
// context.Context, "throwing" ones return an error, "void" ones produce no
// value and Func shapes take no arguments:
//
//	Method[A, R]              Invoke(A) R
//	AsyncThrowingMethod[A, R] Invoke(ctx, A) (R, error)
//	VoidFunc                  Invoke()
//
// Misconfigured doubles are test-authoring bugs: calling an unimplemented
// member that must produce a value panics with *UnimplementedError, and a
// failed narrowing of an erased result panics with *CastError.
package mockrt
