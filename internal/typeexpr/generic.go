package typeexpr

// GenericParam is a generic parameter with an optional inherited constraint.
// It serves both for method-scoped parameters and for associated types of
// an interface.
type GenericParam struct {
	Name      string
	Inherited Expr
}

// RequirementKind distinguishes `T: P` from `T == U`.
type RequirementKind uint8

const (
	RequirementConformance RequirementKind = iota
	RequirementSameType
)

// Requirement is a where-clause entry naming one generic parameter.
type Requirement struct {
	Kind    RequirementKind
	Subject string
	Type    Expr
}

// String renders the requirement as it appears in a where clause.
func (r Requirement) String() string {
	op := ": "
	if r.Kind == RequirementSameType {
		op = " == "
	}
	return r.Subject + op + String(r.Type)
}

// String renders `Name` or `Name: Inherited`.
func (p GenericParam) String() string {
	if p.Inherited == nil {
		return p.Name
	}
	return p.Name + ": " + String(p.Inherited)
}
