package erasure

import (
	"mocksmith/internal/typeexpr"
)

// anyObjectName stands in for a `class` layout bound inside an existential.
const anyObjectName = "AnyObject"

type scope struct {
	engine *Engine
	params map[string]typeexpr.GenericParam
	names  map[string]struct{}
	reqs   []typeexpr.Requirement
	cache  map[string]typeexpr.Expr
}

func (e *Engine) newScope(params []typeexpr.GenericParam, reqs []typeexpr.Requirement) *scope {
	s := &scope{
		engine: e,
		params: make(map[string]typeexpr.GenericParam, len(params)),
		names:  make(map[string]struct{}, len(params)),
		reqs:   reqs,
		cache:  make(map[string]typeexpr.Expr, len(params)),
	}
	for _, p := range params {
		s.params[p.Name] = p
		s.names[p.Name] = struct{}{}
	}
	return s
}

func (s *scope) isParam(t typeexpr.Expr) bool {
	id, ok := t.(*typeexpr.Identifier)
	if !ok || len(id.Args) != 0 {
		return false
	}
	_, hit := s.names[id.Name]
	return hit
}

// replacement computes what a bare scope parameter turns into. The result is
// shared between call sites, so callers must not mutate it.
func (s *scope) replacement(name string) typeexpr.Expr {
	if cached, ok := s.cache[name]; ok {
		return cached
	}
	out := typeexpr.AnyType()
	if bound := s.bound(name); bound != nil {
		out = &typeexpr.Existential{Constraint: wrapComposition(bound)}
	}
	s.cache[name] = out
	return out
}

// bound is the parameter's own inherited type conjoined with every
// conformance requirement naming it. nil means unbounded.
func (s *scope) bound(name string) typeexpr.Expr {
	p := s.params[name]
	var parts []typeexpr.Expr
	if p.Inherited != nil {
		parts = appendFlattened(parts, p.Inherited)
	}
	for _, r := range s.reqs {
		if r.Kind != typeexpr.RequirementConformance || r.Subject != name || r.Type == nil {
			continue
		}
		parts = appendFlattened(parts, r.Type)
	}
	if len(parts) == 0 {
		return nil
	}
	for _, part := range parts {
		// a bound mentioning another (or the same) scope parameter has no
		// spelling outside the method
		if typeexpr.ContainsIdentifier(part, s.names) {
			return nil
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return &typeexpr.Composition{Elems: parts}
}

func appendFlattened(dst []typeexpr.Expr, t typeexpr.Expr) []typeexpr.Expr {
	switch n := t.(type) {
	case *typeexpr.Composition:
		for _, el := range n.Elems {
			dst = appendFlattened(dst, el)
		}
		return dst
	case *typeexpr.ClassRestriction:
		return append(dst, typeexpr.Ident(anyObjectName))
	}
	return append(dst, t)
}

// wrapComposition keeps a multi-element conjunction parsing as a single
// type wherever the existential is substituted.
func wrapComposition(t typeexpr.Expr) typeexpr.Expr {
	if c, ok := t.(*typeexpr.Composition); ok && len(c.Elems) > 1 {
		return typeexpr.Paren(c)
	}
	return t
}
