package typeparse

import (
	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
)

var methodModifiers = map[string]bool{
	"static":      true,
	"class":       true,
	"mutating":    true,
	"nonmutating": true,
	"override":    true,
	"final":       true,
	"optional":    true,
	"func":        true,
}

// ParseMethod parses `[modifiers] name[<generics>](params) [async] [throws]
// [-> Result] [where requirements]`. A leading `func` keyword is accepted
// and dropped.
func ParseMethod(src string) (*iface.Method, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	m := &iface.Method{}
	for p.at(tokIdent) && methodModifiers[p.peek().Text] && p.peekAt(1).Kind == tokIdent {
		mod := p.advance().Text
		if mod != "func" {
			m.Modifiers = append(m.Modifiers, mod)
		}
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	m.Name = name.Text

	if p.at(tokLAngle) {
		if m.ScopeParams, err = p.parseGenericParams(); err != nil {
			return nil, err
		}
	}
	if m.Params, err = p.parseParamList(); err != nil {
		return nil, err
	}
	m.Effects.Async = p.acceptWord("async")
	m.Effects.Throws = p.acceptWord("throws") || p.acceptWord("rethrows")
	if p.accept(tokArrow) {
		if m.Result, err = p.parseType(); err != nil {
			return nil, err
		}
		if typeexpr.IsVoid(m.Result) {
			m.Result = nil
		}
	}
	if p.acceptWord("where") {
		if m.ScopeRequirements, err = p.parseRequirementList(); err != nil {
			return nil, err
		}
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseInitializer parses `[init](params) [async] [throws]`.
func ParseInitializer(src string) (*iface.Initializer, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	p.acceptWord("init")
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	init := &iface.Initializer{Params: params}
	init.Async = p.acceptWord("async")
	init.Throws = p.acceptWord("throws")
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return init, nil
}

// ParseProperty parses `[static] name: Type`.
func ParseProperty(src string) (*iface.Property, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	prop := &iface.Property{}
	if p.atWord("static") && p.peekAt(1).Kind == tokIdent {
		p.advance()
		prop.Static = true
	}
	p.acceptWord("var")
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	prop.Name = name.Text
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	if prop.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return prop, nil
}

// ParseRequirement parses `T: Constraint` or `T == Type`.
func ParseRequirement(src string) (typeexpr.Requirement, error) {
	p, err := newParser(src)
	if err != nil {
		return typeexpr.Requirement{}, err
	}
	r, err := p.parseRequirement()
	if err != nil {
		return typeexpr.Requirement{}, err
	}
	if err := p.expectEOF(); err != nil {
		return typeexpr.Requirement{}, err
	}
	return r, nil
}

// ParseGenericParam parses `Name` or `Name: Constraint`.
func ParseGenericParam(src string) (typeexpr.GenericParam, error) {
	p, err := newParser(src)
	if err != nil {
		return typeexpr.GenericParam{}, err
	}
	gp, err := p.parseGenericParam()
	if err != nil {
		return typeexpr.GenericParam{}, err
	}
	if err := p.expectEOF(); err != nil {
		return typeexpr.GenericParam{}, err
	}
	return gp, nil
}

func (p *parser) parseGenericParams() ([]typeexpr.GenericParam, error) {
	open := p.advance()
	var out []typeexpr.GenericParam
	for {
		gp, err := p.parseGenericParam()
		if err != nil {
			return nil, err
		}
		out = append(out, gp)
		if !p.accept(tokComma) {
			break
		}
	}
	if err := p.expectClose(tokRAngle, open); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseGenericParam() (typeexpr.GenericParam, error) {
	name, err := p.expectIdent()
	if err != nil {
		return typeexpr.GenericParam{}, err
	}
	gp := typeexpr.GenericParam{Name: name.Text}
	if p.accept(tokColon) {
		if gp.Inherited, err = p.parseType(); err != nil {
			return typeexpr.GenericParam{}, err
		}
	}
	return gp, nil
}

func (p *parser) parseRequirementList() ([]typeexpr.Requirement, error) {
	var out []typeexpr.Requirement
	for {
		r, err := p.parseRequirement()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		if !p.accept(tokComma) {
			return out, nil
		}
	}
}

func (p *parser) parseRequirement() (typeexpr.Requirement, error) {
	subject, err := p.expectIdent()
	if err != nil {
		return typeexpr.Requirement{}, err
	}
	r := typeexpr.Requirement{Subject: subject.Text}
	switch {
	case p.accept(tokColon):
		r.Kind = typeexpr.RequirementConformance
	case p.accept(tokEqEq):
		r.Kind = typeexpr.RequirementSameType
	default:
		tok := p.peek()
		return typeexpr.Requirement{}, p.errorf(diag.SynUnexpectedToken, tok, "expected ':' or '==' in requirement, found %s", describe(tok))
	}
	if r.Type, err = p.parseType(); err != nil {
		return typeexpr.Requirement{}, err
	}
	return r, nil
}

// parseParamList: '(' [param (',' param)*] ')'
// param: [label] name ':' [inout|consuming] Type ['...']
func (p *parser) parseParamList() ([]iface.Param, error) {
	open, err := p.expect(tokLParen)
	if err != nil {
		return nil, err
	}
	var params []iface.Param
	seen := make(map[string]bool)
	if !p.at(tokRParen) {
		for {
			nameTok := p.peek()
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			if seen[param.Name] && param.Name != "_" {
				return nil, p.errorf(diag.SynDuplicateLabel, nameTok, "duplicate parameter name %q", param.Name)
			}
			seen[param.Name] = true
			params = append(params, param)
			if !p.accept(tokComma) {
				break
			}
		}
	}
	if err := p.expectClose(tokRParen, open); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseParam() (iface.Param, error) {
	first, err := p.expectIdent()
	if err != nil {
		return iface.Param{}, err
	}
	param := iface.Param{Name: first.Text}
	if p.at(tokIdent) {
		param.Label = first.Text
		param.Name = p.advance().Text
	}
	if _, err := p.expect(tokColon); err != nil {
		return iface.Param{}, err
	}
	t, err := p.parseType()
	if err != nil {
		return iface.Param{}, err
	}
	param.Type = stripParamSpecifiers(t, &param)
	if p.accept(tokEllipsis) {
		param.Variadic = true
	}
	return param, nil
}

// stripParamSpecifiers lifts inout/consuming into flags; other specifiers
// and attributes stay on the type.
func stripParamSpecifiers(t typeexpr.Expr, param *iface.Param) typeexpr.Expr {
	at, ok := t.(*typeexpr.Attributed)
	if !ok {
		return t
	}
	var kept []string
	for _, s := range at.Specifiers {
		switch s {
		case "inout":
			param.InOut = true
		case "consuming", "__owned":
			param.Consuming = true
		default:
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 && len(at.Attributes) == 0 {
		return at.Base
	}
	return &typeexpr.Attributed{Base: at.Base, Specifiers: kept, Attributes: at.Attributes}
}
