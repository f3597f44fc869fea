package typeexpr

// Children returns the direct sub-trees of t in source order.
func Children(t Expr) []Expr {
	switch n := t.(type) {
	case *Identifier:
		return n.Args
	case *Member:
		out := make([]Expr, 0, len(n.Args)+1)
		out = append(out, n.Base)
		return append(out, n.Args...)
	case *Array:
		return []Expr{n.Elem}
	case *Dictionary:
		return []Expr{n.Key, n.Value}
	case *Optional:
		return []Expr{n.Wrapped}
	case *ImplicitlyUnwrapped:
		return []Expr{n.Wrapped}
	case *Tuple:
		out := make([]Expr, len(n.Elems))
		for i := range n.Elems {
			out[i] = n.Elems[i].Type
		}
		return out
	case *Function:
		out := make([]Expr, 0, len(n.Params)+1)
		out = append(out, n.Params...)
		if n.Result != nil {
			out = append(out, n.Result)
		}
		return out
	case *Composition:
		return n.Elems
	case *Existential:
		if n.Constraint == nil {
			return nil
		}
		return []Expr{n.Constraint}
	case *Metatype:
		return []Expr{n.Base}
	case *Attributed:
		return []Expr{n.Base}
	case *PackElement:
		return []Expr{n.Inner}
	case *PackExpansion:
		return []Expr{n.Inner}
	case *Suppressed:
		return []Expr{n.Inner}
	}
	return nil
}

// Inspect calls fn for t and every descendant in pre-order. Returning false
// from fn skips the node's children.
func Inspect(t Expr, fn func(Expr) bool) {
	if t == nil || !fn(t) {
		return
	}
	for _, c := range Children(t) {
		Inspect(c, fn)
	}
}

// ContainsIdentifier reports whether any bare identifier in t is one of names.
func ContainsIdentifier(t Expr, names map[string]struct{}) bool {
	found := false
	Inspect(t, func(e Expr) bool {
		if found {
			return false
		}
		if id, ok := e.(*Identifier); ok {
			if _, hit := names[id.Name]; hit {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
