package erasure

import (
	"mocksmith/internal/typeexpr"
)

func unchanged(t typeexpr.Expr) Result { return Result{Type: t} }

func erased(t typeexpr.Expr) Result { return Result{Type: t, Erased: true} }

// erase is the post-order transform. Every variant of the closed sum is
// listed so that a new node kind shows up here as a missing case.
func (s *scope) erase(t typeexpr.Expr) Result {
	switch n := t.(type) {
	case nil:
		return unchanged(nil)

	case *typeexpr.Identifier:
		return s.eraseIdentifier(n)

	case *typeexpr.Member:
		return s.eraseMember(n)

	case *typeexpr.Array:
		elem := s.erase(n.Elem)
		if !elem.Erased {
			return unchanged(n)
		}
		return erased(&typeexpr.Array{Elem: elem.Type})

	case *typeexpr.Dictionary:
		args, changed := s.eraseContainerArgs(containerDictionary, []typeexpr.Expr{n.Key, n.Value})
		if !changed {
			return unchanged(n)
		}
		return erased(&typeexpr.Dictionary{Key: args[0], Value: args[1]})

	case *typeexpr.Optional:
		w, ok := s.eraseWrapped(n.Wrapped)
		if !ok {
			return unchanged(n)
		}
		return erased(&typeexpr.Optional{Wrapped: w})

	case *typeexpr.ImplicitlyUnwrapped:
		w, ok := s.eraseWrapped(n.Wrapped)
		if !ok {
			return unchanged(n)
		}
		return erased(&typeexpr.ImplicitlyUnwrapped{Wrapped: w})

	case *typeexpr.Tuple:
		var elems []typeexpr.TupleElem
		for i, el := range n.Elems {
			r := s.erase(el.Type)
			if !r.Erased {
				continue
			}
			if elems == nil {
				elems = make([]typeexpr.TupleElem, len(n.Elems))
				copy(elems, n.Elems)
			}
			elems[i] = typeexpr.TupleElem{Label: el.Label, Type: r.Type}
		}
		if elems == nil {
			return unchanged(n)
		}
		return erased(&typeexpr.Tuple{Elems: elems})

	case *typeexpr.Function:
		params, changed := s.eraseList(n.Params)
		result := s.erase(n.Result)
		if !changed && !result.Erased {
			return unchanged(n)
		}
		return erased(&typeexpr.Function{
			Params: params,
			Async:  n.Async,
			Throws: n.Throws,
			Result: result.Type,
		})

	case *typeexpr.Composition:
		elems, changed := s.eraseList(n.Elems)
		if !changed {
			return unchanged(n)
		}
		return erased(&typeexpr.Composition{Elems: elems})

	case *typeexpr.Existential:
		return s.eraseExistential(n)

	case *typeexpr.Metatype:
		return s.eraseMetatype(n)

	case *typeexpr.Attributed:
		base := s.erase(n.Base)
		if !base.Erased {
			return unchanged(n)
		}
		return erased(&typeexpr.Attributed{Base: base.Type, Specifiers: n.Specifiers, Attributes: n.Attributes})

	case *typeexpr.PackElement:
		inner := s.erase(n.Inner)
		if !inner.Erased {
			return unchanged(n)
		}
		return erased(&typeexpr.PackElement{Inner: inner.Type})

	case *typeexpr.PackExpansion:
		inner := s.erase(n.Inner)
		if !inner.Erased {
			return unchanged(n)
		}
		return erased(&typeexpr.PackExpansion{Inner: inner.Type})

	case *typeexpr.Suppressed:
		inner := s.erase(n.Inner)
		if !inner.Erased {
			return unchanged(n)
		}
		return erased(&typeexpr.Suppressed{Inner: inner.Type})

	case *typeexpr.ClassRestriction, *typeexpr.Missing:
		return unchanged(n)
	}
	return unchanged(t)
}

func (s *scope) eraseIdentifier(n *typeexpr.Identifier) Result {
	if len(n.Args) == 0 {
		if _, hit := s.names[n.Name]; hit {
			return erased(s.replacement(n.Name))
		}
		return unchanged(n)
	}
	if k := s.engine.lookupIdentifier(n); k != containerNone {
		args, changed := s.eraseContainerArgs(k, n.Args)
		if !changed {
			return unchanged(n)
		}
		return erased(&typeexpr.Identifier{Name: n.Name, Args: args})
	}
	if s.anyErases(n.Args) {
		return erased(typeexpr.AnyType())
	}
	if _, hit := s.names[n.Name]; hit {
		return erased(typeexpr.AnyType())
	}
	return unchanged(n)
}

func (s *scope) eraseMember(n *typeexpr.Member) Result {
	if k := s.engine.lookupMember(n); k != containerNone {
		args, changed := s.eraseContainerArgs(k, n.Args)
		if !changed {
			return unchanged(n)
		}
		return erased(&typeexpr.Member{Base: n.Base, Name: n.Name, Args: args})
	}
	// V.Element has no meaning once V is gone; Foo<V>.Bar can't be partially
	// rewritten either.
	if s.erase(n.Base).Erased || s.anyErases(n.Args) {
		return erased(typeexpr.AnyType())
	}
	return unchanged(n)
}

// eraseWrapped handles the operand of ? and !. A bare parameter is wrapped in
// parentheses first so the sigil binds to the whole existential.
func (s *scope) eraseWrapped(w typeexpr.Expr) (typeexpr.Expr, bool) {
	r := s.erase(w)
	if !r.Erased {
		return w, false
	}
	if s.isParam(w) {
		return typeexpr.Paren(r.Type), true
	}
	return r.Type, true
}

func (s *scope) eraseExistential(n *typeexpr.Existential) Result {
	if n.Constraint == nil {
		return unchanged(n)
	}
	r := s.erase(n.Constraint)
	if !r.Erased {
		return unchanged(n)
	}
	// any V, some V: the parameter already became an existential (or Any)
	switch out := r.Type.(type) {
	case *typeexpr.Existential:
		return erased(out)
	case *typeexpr.Identifier:
		if out.Name == typeexpr.AnyName && len(out.Args) == 0 {
			return erased(out)
		}
	}
	return erased(&typeexpr.Existential{Opaque: n.Opaque, Constraint: wrapComposition(r.Type)})
}

// eraseMetatype rewrites `(some P).Type` to `(any P).Type` before erasing:
// an opaque existential is not a legal metatype base. An erased base that
// lands on `any P` is lifted to `any P.Type`.
func (s *scope) eraseMetatype(n *typeexpr.Metatype) Result {
	base := n.Base
	if ex, ok := typeexpr.Unparen(base).(*typeexpr.Existential); ok && ex.Opaque && ex.Constraint != nil {
		if _, multi := ex.Constraint.(*typeexpr.Composition); !multi {
			base = &typeexpr.Existential{Constraint: ex.Constraint}
		}
	}
	r := s.erase(base)
	if !r.Erased {
		return unchanged(n)
	}
	// T.Type converts to the existential metatype `any P.Type`, not to
	// `(any P).Type`, whose only value is `(any P).self`.
	if ex, ok := typeexpr.Unparen(r.Type).(*typeexpr.Existential); ok && !ex.Opaque && ex.Constraint != nil {
		return erased(&typeexpr.Existential{Constraint: &typeexpr.Metatype{Base: ex.Constraint}})
	}
	return erased(&typeexpr.Metatype{Base: r.Type})
}

func (s *scope) eraseList(list []typeexpr.Expr) ([]typeexpr.Expr, bool) {
	var out []typeexpr.Expr
	for i, el := range list {
		r := s.erase(el)
		if !r.Erased {
			continue
		}
		if out == nil {
			out = make([]typeexpr.Expr, len(list))
			copy(out, list)
		}
		out[i] = r.Type
	}
	if out == nil {
		return list, false
	}
	return out, true
}

func (s *scope) anyErases(list []typeexpr.Expr) bool {
	for _, el := range list {
		if s.erase(el).Erased {
			return true
		}
	}
	return false
}
