package format

import (
	"strings"

	"mocksmith/internal/decl"
	"mocksmith/internal/typeexpr"
)

func expr(e decl.Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e decl.Expr) {
	switch e := e.(type) {
	case nil:
		sb.WriteString("<<nil>>")
	case *decl.Ident:
		sb.WriteString(e.Name)
	case *decl.MemberRef:
		writeExpr(sb, e.Base)
		sb.WriteByte('.')
		sb.WriteString(e.Name)
	case *decl.ImplicitMember:
		sb.WriteByte('.')
		sb.WriteString(e.Name)
		if e.Args != nil {
			writeArgs(sb, e.Args)
		}
	case *decl.Call:
		writeExpr(sb, e.Fn)
		writeArgs(sb, e.Args)
	case *decl.Construct:
		sb.WriteString(typeexpr.String(e.Type))
		writeArgs(sb, e.Args)
	case *decl.TupleExpr:
		writeArgs(sb, e.Elems)
	case *decl.Try:
		sb.WriteString("try ")
		writeExpr(sb, e.X)
	case *decl.Await:
		sb.WriteString("await ")
		writeExpr(sb, e.X)
	case *decl.InOut:
		sb.WriteByte('&')
		writeExpr(sb, e.X)
	case *decl.StringLit:
		sb.WriteByte('"')
		sb.WriteString(escape(e.Value))
		sb.WriteByte('"')
	}
}

func writeArgs(sb *strings.Builder, args []decl.Arg) {
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a.Label != "" {
			sb.WriteString(a.Label)
			sb.WriteString(": ")
		}
		writeExpr(sb, a.Value)
	}
	sb.WriteByte(')')
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func escape(s string) string { return escaper.Replace(s) }
