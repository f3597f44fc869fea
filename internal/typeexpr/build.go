package typeexpr

// Names of the erasure targets.
const (
	AnyName         = "Any"
	AnyHashableName = "AnyHashable"
)

// Ident builds an identifier node.
func Ident(name string, args ...Expr) *Identifier {
	if len(args) == 0 {
		return &Identifier{Name: name}
	}
	return &Identifier{Name: name, Args: args}
}

// AnyType is the universal existential.
func AnyType() Expr { return &Identifier{Name: AnyName} }

// AnyHashableType is the hashable existential used for lookup keys.
func AnyHashableType() Expr { return &Identifier{Name: AnyHashableName} }

// Paren wraps t into a one-element unlabelled tuple.
func Paren(t Expr) *Tuple {
	return &Tuple{Elems: []TupleElem{{Type: t}}}
}

// Void is the empty tuple.
func Void() *Tuple { return &Tuple{} }

// IsIdentifier reports whether t is a bare identifier named name.
func IsIdentifier(t Expr, name string) bool {
	id, ok := t.(*Identifier)
	return ok && id.Name == name && len(id.Args) == 0
}

// IsVoid reports whether t is nil, the empty tuple or the Void identifier.
func IsVoid(t Expr) bool {
	switch n := t.(type) {
	case nil:
		return true
	case *Tuple:
		return len(n.Elems) == 0
	case *Identifier:
		return n.Name == "Void" && len(n.Args) == 0
	}
	return false
}

// Unparen strips one-element unlabelled tuples.
func Unparen(t Expr) Expr {
	for {
		tup, ok := t.(*Tuple)
		if !ok || len(tup.Elems) != 1 || tup.Elems[0].Label != "" {
			return t
		}
		t = tup.Elems[0].Type
	}
}

// HasSpecifier reports whether t is attributed with the given specifier.
func HasSpecifier(t Expr, spec string) bool {
	at, ok := t.(*Attributed)
	if !ok {
		return false
	}
	for _, s := range at.Specifiers {
		if s == spec {
			return true
		}
	}
	return false
}
