package erasure

import (
	"mocksmith/internal/typeexpr"
)

type containerKind uint8

const (
	containerNone containerKind = iota
	containerList
	containerSet
	containerOptional
	containerDictionary
)

func defaultContainers() map[string]containerKind {
	return map[string]containerKind{
		"Array":      containerList,
		"Set":        containerSet,
		"Optional":   containerOptional,
		"Dictionary": containerDictionary,
	}
}

func (k containerKind) arity() int {
	if k == containerDictionary {
		return 2
	}
	return 1
}

// target is what an erasing argument at position i becomes. Keys and set
// elements must stay hashable.
func (k containerKind) target(i int) typeexpr.Expr {
	switch k {
	case containerSet:
		return typeexpr.AnyHashableType()
	case containerDictionary:
		if i == 0 {
			return typeexpr.AnyHashableType()
		}
	}
	return typeexpr.AnyType()
}

// lookupIdentifier matches Array<...>, Set<...>, Optional<...>, Dictionary<...>.
func (e *Engine) lookupIdentifier(id *typeexpr.Identifier) containerKind {
	k, ok := e.containers[id.Name]
	if !ok || len(id.Args) != k.arity() {
		return containerNone
	}
	return k
}

// lookupMember matches the module-qualified spellings.
func (e *Engine) lookupMember(m *typeexpr.Member) containerKind {
	if !typeexpr.IsIdentifier(m.Base, e.stdModule) {
		return containerNone
	}
	k, ok := e.containers[m.Name]
	if !ok || len(m.Args) != k.arity() {
		return containerNone
	}
	return k
}

// eraseContainerArgs recurses into argument positions only.
func (s *scope) eraseContainerArgs(k containerKind, args []typeexpr.Expr) ([]typeexpr.Expr, bool) {
	var out []typeexpr.Expr
	for i, a := range args {
		r := s.erase(a)
		if !r.Erased {
			continue
		}
		if out == nil {
			out = make([]typeexpr.Expr, len(args))
			copy(out, args)
		}
		out[i] = k.target(i)
	}
	if out == nil {
		return args, false
	}
	return out, true
}
