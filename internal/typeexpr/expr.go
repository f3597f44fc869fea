// Package typeexpr holds the type-expression tree consumed by erasure and
// synthesis. The set of node types is closed: every Expr is one of the
// pointer types declared in this file.
package typeexpr

import "fmt"

// Kind enumerates all node shapes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindIdentifier
	KindMember
	KindArray
	KindDictionary
	KindOptional
	KindImplicitlyUnwrapped
	KindTuple
	KindFunction
	KindComposition
	KindExistential
	KindMetatype
	KindAttributed
	KindPackElement
	KindPackExpansion
	KindSuppressed
	KindClassRestriction
	KindMissing
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindMember:
		return "member"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dictionary"
	case KindOptional:
		return "optional"
	case KindImplicitlyUnwrapped:
		return "implicitly-unwrapped"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindComposition:
		return "composition"
	case KindExistential:
		return "existential"
	case KindMetatype:
		return "metatype"
	case KindAttributed:
		return "attributed"
	case KindPackElement:
		return "pack-element"
	case KindPackExpansion:
		return "pack-expansion"
	case KindSuppressed:
		return "suppressed"
	case KindClassRestriction:
		return "class-restriction"
	case KindMissing:
		return "missing"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Expr is a node of the type-expression tree.
type Expr interface {
	Kind() Kind
	typeExpr()
}

// Identifier is a plain name with optional generic arguments: Foo, Array<T>.
type Identifier struct {
	Name string
	Args []Expr
}

// Member is a qualified name: Base.Name<Args>.
type Member struct {
	Base Expr
	Name string
	Args []Expr
}

// Array is the sugared list type [Elem].
type Array struct {
	Elem Expr
}

// Dictionary is the sugared map type [Key: Value].
type Dictionary struct {
	Key   Expr
	Value Expr
}

// Optional is Wrapped?.
type Optional struct {
	Wrapped Expr
}

// ImplicitlyUnwrapped is Wrapped!.
type ImplicitlyUnwrapped struct {
	Wrapped Expr
}

// TupleElem is one (optionally labelled) element of a tuple.
type TupleElem struct {
	Label string
	Type  Expr
}

// Tuple is (a: A, B). A one-element unlabelled tuple is a parenthesised type.
type Tuple struct {
	Elems []TupleElem
}

// Function is (Params) [async] [throws] -> Result.
type Function struct {
	Params []Expr
	Async  bool
	Throws bool
	Result Expr
}

// Composition is A & B & C.
type Composition struct {
	Elems []Expr
}

// Existential is `any Constraint` or, when Opaque, `some Constraint`.
type Existential struct {
	Opaque     bool
	Constraint Expr
}

// Metatype is Base.Type.
type Metatype struct {
	Base Expr
}

// Attributed carries specifiers (inout, consuming, borrowing, sending) and
// attributes (@escaping, @Sendable) in front of Base.
type Attributed struct {
	Base       Expr
	Specifiers []string
	Attributes []string
}

// PackElement is `each T`.
type PackElement struct {
	Inner Expr
}

// PackExpansion is `repeat T`.
type PackExpansion struct {
	Inner Expr
}

// Suppressed is `~T`.
type Suppressed struct {
	Inner Expr
}

// ClassRestriction is the `class` layout constraint.
type ClassRestriction struct{}

// Missing marks a hole left by an upstream parser.
type Missing struct{}

func (*Identifier) Kind() Kind          { return KindIdentifier }
func (*Member) Kind() Kind              { return KindMember }
func (*Array) Kind() Kind               { return KindArray }
func (*Dictionary) Kind() Kind          { return KindDictionary }
func (*Optional) Kind() Kind            { return KindOptional }
func (*ImplicitlyUnwrapped) Kind() Kind { return KindImplicitlyUnwrapped }
func (*Tuple) Kind() Kind               { return KindTuple }
func (*Function) Kind() Kind            { return KindFunction }
func (*Composition) Kind() Kind         { return KindComposition }
func (*Existential) Kind() Kind         { return KindExistential }
func (*Metatype) Kind() Kind            { return KindMetatype }
func (*Attributed) Kind() Kind          { return KindAttributed }
func (*PackElement) Kind() Kind         { return KindPackElement }
func (*PackExpansion) Kind() Kind       { return KindPackExpansion }
func (*Suppressed) Kind() Kind          { return KindSuppressed }
func (*ClassRestriction) Kind() Kind    { return KindClassRestriction }
func (*Missing) Kind() Kind             { return KindMissing }

func (*Identifier) typeExpr()          {}
func (*Member) typeExpr()              {}
func (*Array) typeExpr()               {}
func (*Dictionary) typeExpr()          {}
func (*Optional) typeExpr()            {}
func (*ImplicitlyUnwrapped) typeExpr() {}
func (*Tuple) typeExpr()               {}
func (*Function) typeExpr()            {}
func (*Composition) typeExpr()         {}
func (*Existential) typeExpr()         {}
func (*Metatype) typeExpr()            {}
func (*Attributed) typeExpr()          {}
func (*PackElement) typeExpr()         {}
func (*PackExpansion) typeExpr()       {}
func (*Suppressed) typeExpr()          {}
func (*ClassRestriction) typeExpr()    {}
func (*Missing) typeExpr()             {}
