// Package decl holds the declaration trees produced by synthesis. The trees
// are plain data: internal/format renders them, nothing here emits text.
package decl

import "mocksmith/internal/typeexpr"

// Decl is a member-level or top-level declaration.
type Decl interface {
	DeclName() string
	declNode()
}

// Modifiers are rendered in order before the declaration keyword.
type Modifiers []string

// Has reports whether m contains mod.
func (m Modifiers) Has(mod string) bool {
	for _, x := range m {
		if x == mod {
			return true
		}
	}
	return false
}

// Field is a stored property: `[mods] let|var name[: Type] = Init`.
type Field struct {
	Modifiers Modifiers
	Mutable   bool
	Name      string
	Type      typeexpr.Expr
	Init      Expr
}

// Accessor is the get or set half of a computed property.
type Accessor struct {
	Async  bool
	Throws bool
	Body   []Stmt
}

// Property is a computed property. Set is nil for read-only properties.
type Property struct {
	Modifiers Modifiers
	Name      string
	Type      typeexpr.Expr
	Get       *Accessor
	Set       *Accessor
}

// Param of a function or initializer. Type carries specifiers such as inout.
type Param struct {
	Label    string
	Name     string
	Type     typeexpr.Expr
	Variadic bool
}

// Func is a method declaration with a body.
type Func struct {
	Modifiers  Modifiers
	Name       string
	TypeParams []typeexpr.GenericParam
	Params     []Param
	Async      bool
	Throws     bool
	Result     typeexpr.Expr
	Where      []typeexpr.Requirement
	Body       []Stmt
}

// Init is an initializer declaration.
type Init struct {
	Modifiers Modifiers
	Params    []Param
	Async     bool
	Throws    bool
	Body      []Stmt
}

// Case of an enum; Payload is empty for plain cases.
type Case struct {
	Name    string
	Payload []typeexpr.Expr
}

// TypeAlias is `typealias Name = Type`.
type TypeAlias struct {
	Modifiers Modifiers
	Name      string
	Type      typeexpr.Expr
}

// Enum is a closed tagged union with optional nested aliases.
type Enum struct {
	Modifiers  Modifiers
	Name       string
	TypeParams []string
	Aliases    []*TypeAlias
	Cases      []Case
}

// Class is the generated double.
type Class struct {
	Attributes []string
	Modifiers  Modifiers
	Name       string
	TypeParams []typeexpr.GenericParam
	Conforms   []typeexpr.Expr
	Where      []typeexpr.Requirement
	Members    []Decl
}

func (d *Field) DeclName() string     { return d.Name }
func (d *Property) DeclName() string  { return d.Name }
func (d *Func) DeclName() string      { return d.Name }
func (d *Init) DeclName() string      { return "init" }
func (d *TypeAlias) DeclName() string { return d.Name }
func (d *Enum) DeclName() string      { return d.Name }
func (d *Class) DeclName() string     { return d.Name }

func (*Field) declNode()     {}
func (*Property) declNode()  {}
func (*Func) declNode()      {}
func (*Init) declNode()      {}
func (*TypeAlias) declNode() {}
func (*Enum) declNode()      {}
func (*Class) declNode()     {}

// Case returns the enum case named name.
func (d *Enum) Case(name string) (Case, bool) {
	for _, c := range d.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// Member returns the first class member named name.
func (d *Class) Member(name string) Decl {
	for _, m := range d.Members {
		if m.DeclName() == name {
			return m
		}
	}
	return nil
}
