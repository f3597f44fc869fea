package decl

import "mocksmith/internal/typeexpr"

// Expr is an expression inside a generated body.
type Expr interface {
	exprNode()
}

// Ident references a local or member by name.
type Ident struct {
	Name string
}

// MemberRef is `Base.Name`.
type MemberRef struct {
	Base Expr
	Name string
}

// ImplicitMember is `.Name` or `.Name(args)` with the type inferred.
type ImplicitMember struct {
	Name string
	Args []Arg
}

// Arg is a possibly labelled argument.
type Arg struct {
	Label string
	Value Expr
}

// Call is `Fn(args)`.
type Call struct {
	Fn   Expr
	Args []Arg
}

// Construct is `Type(args)`.
type Construct struct {
	Type typeexpr.Expr
	Args []Arg
}

// TupleExpr is `(a: x, y)`. An empty tuple renders as `()`.
type TupleExpr struct {
	Elems []Arg
}

// Try is `try X`.
type Try struct {
	X Expr
}

// Await is `await X`.
type Await struct {
	X Expr
}

// InOut is `&X`.
type InOut struct {
	X Expr
}

// StringLit is a string literal; Value is unescaped.
type StringLit struct {
	Value string
}

func (*Ident) exprNode()          {}
func (*MemberRef) exprNode()      {}
func (*ImplicitMember) exprNode() {}
func (*Call) exprNode()           {}
func (*Construct) exprNode()      {}
func (*TupleExpr) exprNode()      {}
func (*Try) exprNode()            {}
func (*Await) exprNode()          {}
func (*InOut) exprNode()          {}
func (*StringLit) exprNode()      {}

// Id is shorthand for &Ident{Name: name}.
func Id(name string) *Ident { return &Ident{Name: name} }

// Sel builds base.name.
func Sel(base Expr, name string) *MemberRef { return &MemberRef{Base: base, Name: name} }

// CallOf builds fn(args...).
func CallOf(fn Expr, args ...Arg) *Call { return &Call{Fn: fn, Args: args} }

// Effectful wraps x in try and/or await, in that order.
func Effectful(x Expr, async, throws bool) Expr {
	if async {
		x = &Await{X: x}
	}
	if throws {
		x = &Try{X: x}
	}
	return x
}
