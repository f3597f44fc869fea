package synth

import (
	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
)

func validateParams(params []iface.Param) error {
	for i, p := range params {
		if p.Name == "" {
			return diag.Errorf(diag.SynthMalformedMember, "parameter %d has no name", i+1)
		}
		if p.Type == nil {
			return diag.Errorf(diag.SynthMalformedMember, "parameter %q has no type", p.Name)
		}
		if !p.Variadic {
			continue
		}
		if p.InOut {
			return diag.Errorf(diag.SynthInoutVariadic, "variadic parameter %q cannot be inout", p.Name)
		}
		if i != len(params)-1 {
			return diag.Errorf(diag.SynthVariadicNotLast, "variadic parameter %q must be last", p.Name)
		}
	}
	return nil
}

// validateScope checks the method's generic parameters and where clause.
// Requirements may also constrain the interface's associated types or Self.
func validateScope(owner *iface.Decl, m *iface.Method) error {
	assoc := owner.AssociatedNames()
	seen := make(map[string]struct{}, len(m.ScopeParams))
	for _, p := range m.ScopeParams {
		if _, dup := seen[p.Name]; dup {
			return diag.Errorf(diag.SynthDuplicateScopeParam, "generic parameter %q declared twice", p.Name)
		}
		if _, clash := assoc[p.Name]; clash {
			return diag.Errorf(diag.SynthDuplicateScopeParam, "generic parameter %q shadows an associated type", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	for _, r := range m.ScopeRequirements {
		if _, ok := seen[r.Subject]; ok {
			continue
		}
		if _, ok := assoc[r.Subject]; ok || r.Subject == "Self" {
			continue
		}
		return diag.Errorf(diag.SynthUnknownScopeParam, "requirement %q names no generic parameter of %s", r.String(), m.Name)
	}
	return nil
}
