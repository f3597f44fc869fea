package synth

import (
	"mocksmith/internal/decl"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
)

// memberAccess is the modifier that gives a conformance member the
// visibility of the interface it satisfies.
func memberAccess(owner *iface.Decl) string {
	switch owner.Access {
	case iface.AccessPublic, iface.AccessOpen:
		return "public"
	case iface.AccessPackage:
		return "package"
	}
	return ""
}

func modifiers(mods ...string) decl.Modifiers {
	var out decl.Modifiers
	for _, m := range mods {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func flag(on bool, mod string) string {
	if on {
		return mod
	}
	return ""
}

// descriptorExpr tags a primitive with the owner and member it records.
func descriptorExpr(owner *iface.Decl, m iface.Member) decl.Expr {
	return &decl.Construct{
		Type: typeexpr.Ident(descriptorType),
		Args: []decl.Arg{
			{Label: "owner", Value: &decl.StringLit{Value: owner.Name}},
			{Label: "member", Value: &decl.StringLit{Value: m.MemberName()}},
		},
	}
}

// storage builds the backing field and the exposed accessor around a
// primitive of type prim.
func storage(owner *iface.Decl, m iface.Member, name string, prim typeexpr.Expr, static bool) (*decl.Field, *decl.Property) {
	iso := flag(owner.Isolated, "nonisolated")
	st := flag(static, "static")
	backing := &decl.Field{
		Modifiers: modifiers("private", iso, st),
		// static recorders are replaced wholesale on reset
		Mutable: static,
		Name:    BackingName(name),
		Init: &decl.Construct{
			Type: prim,
			Args: []decl.Arg{{Label: "descriptor", Value: descriptorExpr(owner, m)}},
		},
	}
	accessor := &decl.Property{
		Modifiers: modifiers(memberAccess(owner), iso, st),
		Name:      AccessorName(name),
		Type:      prim,
		Get: &decl.Accessor{Body: []decl.Stmt{
			&decl.Return{Value: decl.Id(backing.Name)},
		}},
	}
	return backing, accessor
}

// ResetStmt re-creates a static recorder's primitive.
func ResetStmt(r *Recorder) decl.Stmt {
	return &decl.Assign{Target: decl.Id(r.Backing.Name), Value: r.Backing.Init}
}
