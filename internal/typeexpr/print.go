package typeexpr

import "strings"

// String renders t in the canonical surface notation.
func String(t Expr) string {
	var sb strings.Builder
	write(&sb, t)
	return sb.String()
}

func write(sb *strings.Builder, t Expr) {
	switch n := t.(type) {
	case nil:
		sb.WriteString("<<nil>>")
	case *Identifier:
		sb.WriteString(n.Name)
		writeArgs(sb, n.Args)
	case *Member:
		writeWrapped(sb, n.Base, needsParensAsBase(n.Base))
		sb.WriteByte('.')
		sb.WriteString(n.Name)
		writeArgs(sb, n.Args)
	case *Array:
		sb.WriteByte('[')
		write(sb, n.Elem)
		sb.WriteByte(']')
	case *Dictionary:
		sb.WriteByte('[')
		write(sb, n.Key)
		sb.WriteString(": ")
		write(sb, n.Value)
		sb.WriteByte(']')
	case *Optional:
		writeWrapped(sb, n.Wrapped, needsParensBeforeSuffix(n.Wrapped))
		sb.WriteByte('?')
	case *ImplicitlyUnwrapped:
		writeWrapped(sb, n.Wrapped, needsParensBeforeSuffix(n.Wrapped))
		sb.WriteByte('!')
	case *Tuple:
		sb.WriteByte('(')
		for i, el := range n.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			if el.Label != "" {
				sb.WriteString(el.Label)
				sb.WriteString(": ")
			}
			write(sb, el.Type)
		}
		sb.WriteByte(')')
	case *Function:
		sb.WriteByte('(')
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, p)
		}
		sb.WriteByte(')')
		if n.Async {
			sb.WriteString(" async")
		}
		if n.Throws {
			sb.WriteString(" throws")
		}
		sb.WriteString(" -> ")
		if n.Result == nil {
			sb.WriteString("Void")
		} else {
			write(sb, n.Result)
		}
	case *Composition:
		for i, el := range n.Elems {
			if i > 0 {
				sb.WriteString(" & ")
			}
			_, fn := el.(*Function)
			writeWrapped(sb, el, fn)
		}
	case *Existential:
		if n.Opaque {
			sb.WriteString("some")
		} else {
			sb.WriteString("any")
		}
		if n.Constraint != nil {
			sb.WriteByte(' ')
			_, fn := n.Constraint.(*Function)
			writeWrapped(sb, n.Constraint, fn)
		}
	case *Metatype:
		writeWrapped(sb, n.Base, needsParensBeforeSuffix(n.Base))
		sb.WriteString(".Type")
	case *Attributed:
		for _, s := range n.Specifiers {
			sb.WriteString(s)
			sb.WriteByte(' ')
		}
		for _, a := range n.Attributes {
			sb.WriteByte('@')
			sb.WriteString(a)
			sb.WriteByte(' ')
		}
		write(sb, n.Base)
	case *PackElement:
		sb.WriteString("each ")
		write(sb, n.Inner)
	case *PackExpansion:
		sb.WriteString("repeat ")
		write(sb, n.Inner)
	case *Suppressed:
		sb.WriteByte('~')
		write(sb, n.Inner)
	case *ClassRestriction:
		sb.WriteString("class")
	case *Missing:
		sb.WriteString("<<missing>>")
	}
}

func writeArgs(sb *strings.Builder, args []Expr) {
	if len(args) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		write(sb, a)
	}
	sb.WriteByte('>')
}

func writeWrapped(sb *strings.Builder, t Expr, parens bool) {
	if parens {
		sb.WriteByte('(')
	}
	write(sb, t)
	if parens {
		sb.WriteByte(')')
	}
}

// needsParensBeforeSuffix: prefix-operator and infix shapes bind looser
// than the ?, ! and .Type suffixes.
func needsParensBeforeSuffix(t Expr) bool {
	switch t.(type) {
	case *Function, *Composition, *Existential, *Attributed,
		*PackElement, *PackExpansion, *Suppressed:
		return true
	}
	return false
}

func needsParensAsBase(t Expr) bool {
	switch t.(type) {
	case *Identifier, *Member, *Tuple:
		return false
	}
	return true
}
