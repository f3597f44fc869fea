package iface

import (
	"strings"

	"mocksmith/internal/typeexpr"
)

// Effects of a member. MutatingGet/MutatingSet only apply to properties.
type Effects struct {
	Async       bool
	Throws      bool
	MutatingGet bool
	MutatingSet bool
}

// Param is one parameter of a method or initializer.
type Param struct {
	// Label is the external argument label; empty means same as Name, "_"
	// means unlabelled.
	Label     string
	Name      string
	Type      typeexpr.Expr
	InOut     bool
	Consuming bool
	Variadic  bool
}

// ExternalLabel is the label callers write ("_" when unlabelled).
func (p Param) ExternalLabel() string {
	if p.Label == "" {
		return p.Name
	}
	return p.Label
}

// Member is one requirement of the interface: *Initializer, *Property or
// *Method.
type Member interface {
	MemberName() string
	member()
}

type Initializer struct {
	Params []Param
	Async  bool
	Throws bool
}

type Property struct {
	Name     string
	Type     typeexpr.Expr
	Effects  Effects
	Settable bool
	Static   bool
}

type Method struct {
	Name              string
	ScopeParams       []typeexpr.GenericParam
	ScopeRequirements []typeexpr.Requirement
	Params            []Param
	// Result is nil for methods returning nothing.
	Result    typeexpr.Expr
	Effects   Effects
	Modifiers []string
}

func (*Initializer) member() {}
func (*Property) member()    {}
func (*Method) member()      {}

func (i *Initializer) MemberName() string { return selector("init", i.Params) }
func (p *Property) MemberName() string    { return p.Name }
func (m *Method) MemberName() string      { return selector(m.Name, m.Params) }

// Returns reports whether the method produces a value.
func (m *Method) Returns() bool { return !typeexpr.IsVoid(m.Result) }

// IsStatic reports whether the method belongs to the type.
func (m *Method) IsStatic() bool {
	return m.HasModifier("static") || m.HasModifier("class")
}

// HasModifier reports whether mod is among the method's modifiers.
func (m *Method) HasModifier(mod string) bool {
	for _, x := range m.Modifiers {
		if x == mod {
			return true
		}
	}
	return false
}

// IsGeneric reports whether the method declares its own type parameters.
func (m *Method) IsGeneric() bool { return len(m.ScopeParams) > 0 }

// selector renders name(label1:label2:).
func selector(name string, params []Param) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for _, p := range params {
		sb.WriteString(p.ExternalLabel())
		sb.WriteByte(':')
	}
	sb.WriteByte(')')
	return sb.String()
}
