package synth

import (
	"mocksmith/internal/decl"
	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
)

// property never erases: a property type cannot mention a method generic.
// Mutating get/set flags are dropped since the double is a final class.
func (s *Synthesizer) property(owner *iface.Decl, m *iface.Property, name string) (*Recorder, error) {
	if m.Name == "" {
		return nil, diag.Errorf(diag.SynthMalformedMember, "property has no name")
	}
	if typeexpr.IsVoid(m.Type) {
		return nil, diag.Errorf(diag.SynthVoidProperty, "property %q has no value type", m.Name)
	}

	shape := PropertyShape(m.Settable, m.Effects.Async, m.Effects.Throws)
	prim := typeexpr.Ident(shape.String(), m.Type)
	backing, accessor := storage(owner, m, name, prim, m.Static)

	get := decl.CallOf(decl.Sel(decl.Id(backing.Name), "get"))
	delegate := &decl.Property{
		Modifiers: modifiers(memberAccess(owner), flag(m.Static, "static")),
		Name:      m.Name,
		Type:      m.Type,
		Get: &decl.Accessor{
			Async:  m.Effects.Async,
			Throws: m.Effects.Throws,
			Body: []decl.Stmt{
				&decl.Return{Value: decl.Effectful(get, m.Effects.Async, m.Effects.Throws)},
			},
		},
	}
	if m.Settable {
		set := decl.CallOf(decl.Sel(decl.Id(backing.Name), "set"), decl.Arg{Value: decl.Id(newValueVar)})
		delegate.Set = &decl.Accessor{Body: []decl.Stmt{&decl.ExprStmt{X: set}}}
	}

	return &Recorder{
		Name:     name,
		Display:  display(owner, m),
		Shape:    shape,
		Backing:  backing,
		Accessor: accessor,
		Delegate: delegate,
		Static:   m.Static,
	}, nil
}
