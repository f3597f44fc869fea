package format

import (
	"mocksmith/internal/decl"
	"mocksmith/internal/typeexpr"
)

func (p printer) stmts(body []decl.Stmt) {
	for _, s := range body {
		p.stmt(s)
	}
}

func (p printer) stmt(s decl.Stmt) {
	w := p.w
	switch s := s.(type) {
	case *decl.Let:
		w.WriteString("let " + s.Name)
		if s.Type != nil {
			w.WriteString(": " + typeexpr.String(s.Type))
		}
		if s.Value != nil {
			w.WriteString(" = " + expr(s.Value))
		}
	case *decl.Return:
		w.WriteString("return")
		if s.Value != nil {
			w.WriteString(" " + expr(s.Value))
		}
	case *decl.ExprStmt:
		w.WriteString(expr(s.X))
	case *decl.Assign:
		w.WriteString(expr(s.Target) + " = " + expr(s.Value))
	case *decl.Throw:
		w.WriteString("throw " + expr(s.X))
	case *decl.DoCatch:
		w.WriteString("do")
		p.block(func() { p.stmts(s.Body) }, len(s.Body) == 0)
		// fold the catch onto the closing brace line
		w.buf = w.buf[:len(w.buf)-1]
		w.atLineStart = false
		w.WriteString(" catch")
		p.block(func() { p.stmts(s.Catch) }, len(s.Catch) == 0)
		return
	case *decl.CheckedCast:
		w.WriteString("guard let " + s.Name + " = " + expr(s.Value) + " as? " + typeexpr.String(s.Type) + " else")
		p.block(func() {
			// qualified: a parameter named `type` shadows the free function
			w.WriteString(`fatalError("` + escape(s.Message) + `, got \(Swift.type(of: ` + expr(s.Value) + `))")`)
			w.Newline()
		}, false)
		return
	}
	w.Newline()
}
