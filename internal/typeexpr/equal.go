package typeexpr

// Equal reports structural equality of two trees.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Identifier:
		y := b.(*Identifier)
		return x.Name == y.Name && equalList(x.Args, y.Args)
	case *Member:
		y := b.(*Member)
		return x.Name == y.Name && Equal(x.Base, y.Base) && equalList(x.Args, y.Args)
	case *Array:
		return Equal(x.Elem, b.(*Array).Elem)
	case *Dictionary:
		y := b.(*Dictionary)
		return Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case *Optional:
		return Equal(x.Wrapped, b.(*Optional).Wrapped)
	case *ImplicitlyUnwrapped:
		return Equal(x.Wrapped, b.(*ImplicitlyUnwrapped).Wrapped)
	case *Tuple:
		y := b.(*Tuple)
		if len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if x.Elems[i].Label != y.Elems[i].Label || !Equal(x.Elems[i].Type, y.Elems[i].Type) {
				return false
			}
		}
		return true
	case *Function:
		y := b.(*Function)
		return x.Async == y.Async && x.Throws == y.Throws &&
			equalList(x.Params, y.Params) && Equal(x.Result, y.Result)
	case *Composition:
		return equalList(x.Elems, b.(*Composition).Elems)
	case *Existential:
		y := b.(*Existential)
		return x.Opaque == y.Opaque && Equal(x.Constraint, y.Constraint)
	case *Metatype:
		return Equal(x.Base, b.(*Metatype).Base)
	case *Attributed:
		y := b.(*Attributed)
		return equalStrings(x.Specifiers, y.Specifiers) &&
			equalStrings(x.Attributes, y.Attributes) && Equal(x.Base, y.Base)
	case *PackElement:
		return Equal(x.Inner, b.(*PackElement).Inner)
	case *PackExpansion:
		return Equal(x.Inner, b.(*PackExpansion).Inner)
	case *Suppressed:
		return Equal(x.Inner, b.(*Suppressed).Inner)
	case *ClassRestriction, *Missing:
		return true
	}
	return false
}

func equalList(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
