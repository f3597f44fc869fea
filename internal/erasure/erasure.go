// Package erasure replaces method-scoped generic parameters inside a type
// expression with types that stay valid outside the method's signature.
//
// The transform is syntactic and conservative: it never type-checks, never
// fails and never mutates its input. Untouched sub-trees are returned by
// identity, rebuilt nodes are fresh.
package erasure

import (
	"mocksmith/internal/typeexpr"
)

// DefaultStdModule qualifies the recognised standard containers.
const DefaultStdModule = "Swift"

// Options configure an Engine.
type Options struct {
	// StdModule is the module qualifier accepted for the recognised
	// containers (Swift.Array<T> as well as Array<T>).
	StdModule string
}

// Result is the erased type plus whether any substitution happened in it.
type Result struct {
	Type   typeexpr.Expr
	Erased bool
}

// Engine erases scope parameters. The zero value is not usable; call New.
type Engine struct {
	stdModule  string
	containers map[string]containerKind
}

// New creates an Engine.
func New(opts Options) *Engine {
	if opts.StdModule == "" {
		opts.StdModule = DefaultStdModule
	}
	return &Engine{
		stdModule:  opts.StdModule,
		containers: defaultContainers(),
	}
}

var defaultEngine = New(Options{})

// Erase runs the default engine.
func Erase(t typeexpr.Expr, scope []typeexpr.GenericParam, reqs []typeexpr.Requirement) Result {
	return defaultEngine.Erase(t, scope, reqs)
}

// Erase replaces every occurrence of a parameter from scope inside t.
// Only conformance requirements whose subject is a scope parameter feed the
// parameter's bound; requirements on other names are ignored.
func (e *Engine) Erase(t typeexpr.Expr, scope []typeexpr.GenericParam, reqs []typeexpr.Requirement) Result {
	if t == nil {
		return Result{}
	}
	if len(scope) == 0 {
		return Result{Type: t}
	}
	return e.newScope(scope, reqs).erase(t)
}

// Bound returns the existential a scope parameter erases to.
func (e *Engine) Bound(name string, scope []typeexpr.GenericParam, reqs []typeexpr.Requirement) (typeexpr.Expr, bool) {
	s := e.newScope(scope, reqs)
	if _, ok := s.params[name]; !ok {
		return nil, false
	}
	return s.replacement(name), true
}
