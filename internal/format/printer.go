package format

import (
	"strings"

	"mocksmith/internal/decl"
	"mocksmith/internal/typeexpr"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
	// Header lines are emitted as line comments at the top of a file.
	Header []string
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	w *Writer
}

// File renders top-level declarations separated by blank lines.
func File(decls []decl.Decl, opt Options) []byte {
	w := NewWriter(opt)
	p := printer{w: w}
	for _, h := range opt.Header {
		w.WriteString("// ")
		w.WriteString(h)
		w.Newline()
	}
	if len(opt.Header) > 0 && len(decls) > 0 {
		w.BlankLine()
	}
	for i, d := range decls {
		if i > 0 {
			w.BlankLine()
		}
		p.decl(d)
	}
	w.Newline()
	return w.Bytes()
}

// Decl renders a single declaration.
func Decl(d decl.Decl, opt Options) string {
	w := NewWriter(opt)
	printer{w: w}.decl(d)
	return strings.TrimSuffix(string(w.Bytes()), "\n")
}

func (p printer) decl(d decl.Decl) {
	switch d := d.(type) {
	case *decl.Class:
		p.class(d)
	case *decl.Enum:
		p.enum(d)
	case *decl.TypeAlias:
		p.modifiers(d.Modifiers)
		p.w.WriteString("typealias " + d.Name + " = " + typeexpr.String(d.Type))
		p.w.Newline()
	case *decl.Field:
		p.field(d)
	case *decl.Property:
		p.property(d)
	case *decl.Func:
		p.fn(d)
	case *decl.Init:
		p.init(d)
	}
}

func (p printer) modifiers(mods decl.Modifiers) {
	for _, m := range mods {
		p.w.WriteString(m)
		p.w.WriteByte(' ')
	}
}

// block writes ` {`, the body at one more level and the closing brace. An
// empty body renders as `{}`.
func (p printer) block(body func(), empty bool) {
	if empty {
		p.w.WriteString(" {}")
		p.w.Newline()
		return
	}
	p.w.WriteString(" {")
	p.w.Newline()
	p.w.IndentPush()
	body()
	p.w.IndentPop()
	p.w.WriteString("}")
	p.w.Newline()
}

func (p printer) class(c *decl.Class) {
	for _, a := range c.Attributes {
		p.w.WriteString("@" + a)
		p.w.Newline()
	}
	p.modifiers(c.Modifiers)
	p.w.WriteString("class " + c.Name)
	p.w.WriteString(genericParams(c.TypeParams))
	if len(c.Conforms) > 0 {
		p.w.WriteString(": ")
		p.w.WriteString(typeList(c.Conforms))
	}
	p.w.WriteString(whereClause(c.Where))
	p.block(func() {
		for i, m := range c.Members {
			if i > 0 {
				p.w.BlankLine()
			}
			p.decl(m)
		}
	}, len(c.Members) == 0)
}

func (p printer) enum(e *decl.Enum) {
	p.modifiers(e.Modifiers)
	p.w.WriteString("enum " + e.Name)
	if len(e.TypeParams) > 0 {
		p.w.WriteString("<" + strings.Join(e.TypeParams, ", ") + ">")
	}
	p.block(func() {
		for _, a := range e.Aliases {
			p.decl(a)
		}
		if len(e.Aliases) > 0 && len(e.Cases) > 0 {
			p.w.BlankLine()
		}
		for _, c := range e.Cases {
			p.w.WriteString("case " + c.Name)
			if len(c.Payload) > 0 {
				p.w.WriteString("(" + typeList(c.Payload) + ")")
			}
			p.w.Newline()
		}
	}, len(e.Aliases) == 0 && len(e.Cases) == 0)
}

func (p printer) field(f *decl.Field) {
	p.modifiers(f.Modifiers)
	if f.Mutable {
		p.w.WriteString("var ")
	} else {
		p.w.WriteString("let ")
	}
	p.w.WriteString(f.Name)
	if f.Type != nil {
		p.w.WriteString(": " + typeexpr.String(f.Type))
	}
	if f.Init != nil {
		p.w.WriteString(" = " + expr(f.Init))
	}
	p.w.Newline()
}

func (p printer) property(pr *decl.Property) {
	p.modifiers(pr.Modifiers)
	p.w.WriteString("var " + pr.Name + ": " + typeexpr.String(pr.Type))
	get := pr.Get
	if get == nil {
		get = &decl.Accessor{}
	}
	// a plain getter collapses into the property body
	if pr.Set == nil && !get.Async && !get.Throws {
		p.block(func() { p.stmts(get.Body) }, len(get.Body) == 0)
		return
	}
	p.block(func() {
		p.accessor("get", get)
		if pr.Set != nil {
			p.accessor("set", pr.Set)
		}
	}, false)
}

func (p printer) accessor(kw string, a *decl.Accessor) {
	p.w.WriteString(kw + effects(a.Async, a.Throws))
	p.block(func() { p.stmts(a.Body) }, len(a.Body) == 0)
}

func (p printer) fn(f *decl.Func) {
	p.modifiers(f.Modifiers)
	p.w.WriteString("func " + f.Name + genericParams(f.TypeParams))
	p.w.WriteString(params(f.Params))
	p.w.WriteString(effects(f.Async, f.Throws))
	if !typeexpr.IsVoid(f.Result) {
		p.w.WriteString(" -> " + typeexpr.String(f.Result))
	}
	p.w.WriteString(whereClause(f.Where))
	p.block(func() { p.stmts(f.Body) }, len(f.Body) == 0)
}

func (p printer) init(in *decl.Init) {
	p.modifiers(in.Modifiers)
	p.w.WriteString("init" + params(in.Params) + effects(in.Async, in.Throws))
	p.block(func() { p.stmts(in.Body) }, len(in.Body) == 0)
}

func effects(async, throws bool) string {
	s := ""
	if async {
		s += " async"
	}
	if throws {
		s += " throws"
	}
	return s
}

func genericParams(ps []typeexpr.GenericParam) string {
	if len(ps) == 0 {
		return ""
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func whereClause(reqs []typeexpr.Requirement) string {
	if len(reqs) == 0 {
		return ""
	}
	parts := make([]string, len(reqs))
	for i, r := range reqs {
		parts[i] = r.String()
	}
	return " where " + strings.Join(parts, ", ")
}

func typeList(ts []typeexpr.Expr) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = typeexpr.String(t)
	}
	return strings.Join(parts, ", ")
}

func params(ps []decl.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		var sb strings.Builder
		if p.Label != "" && p.Label != p.Name {
			sb.WriteString(p.Label)
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(typeexpr.String(p.Type))
		if p.Variadic {
			sb.WriteString("...")
		}
		parts[i] = sb.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
