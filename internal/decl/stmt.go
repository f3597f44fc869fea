package decl

import "mocksmith/internal/typeexpr"

// Stmt is a statement inside a generated body.
type Stmt interface {
	stmtNode()
}

// Let is `let Name[: Type] [= Value]`.
type Let struct {
	Name  string
	Type  typeexpr.Expr
	Value Expr
}

// Return is `return [Value]`.
type Return struct {
	Value Expr
}

// ExprStmt evaluates X for its effects.
type ExprStmt struct {
	X Expr
}

// Assign is `Target = Value`.
type Assign struct {
	Target Expr
	Value  Expr
}

// DoCatch is `do { Body } catch { Catch }`; Catch sees the implicit `error`.
type DoCatch struct {
	Body  []Stmt
	Catch []Stmt
}

// Throw is `throw X`.
type Throw struct {
	X Expr
}

// CheckedCast narrows Value to Type, binding it to Name. A failed cast traps
// with Message followed by the dynamic type of the value.
type CheckedCast struct {
	Name    string
	Value   Expr
	Type    typeexpr.Expr
	Message string
}

func (*Let) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*Assign) stmtNode()      {}
func (*DoCatch) stmtNode()     {}
func (*Throw) stmtNode()       {}
func (*CheckedCast) stmtNode() {}

// Inspect calls fn for every statement in body, descending into do/catch.
func Inspect(body []Stmt, fn func(Stmt)) {
	for _, s := range body {
		fn(s)
		if dc, ok := s.(*DoCatch); ok {
			Inspect(dc.Body, fn)
			Inspect(dc.Catch, fn)
		}
	}
}
