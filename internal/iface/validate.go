package iface

import (
	"fmt"
	"strings"

	"mocksmith/internal/diag"
)

// ValidationError aggregates everything wrong with a declaration.
type ValidationError struct {
	Decl   string
	Issues []*diag.Error
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: invalid declaration", e.Decl)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: validation failed:", e.Decl)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue.Error())
	}
	return b.String()
}

// Unwrap exposes the issues to errors.Is / errors.As.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue
	}
	return out
}

// Validate checks the declaration-level structure: a name, distinct
// associated types, requirements that name associated types and named
// members. Member signatures are checked during synthesis.
func (d *Decl) Validate() error {
	errs := ValidationError{Decl: d.Name}
	add := func(code diag.Code, member, format string, args ...any) {
		errs.Issues = append(errs.Issues, diag.Errorf(code, format, args...).WithSubject(d.Name, member))
	}

	if d.Name == "" {
		errs.Decl = "<unnamed>"
		add(diag.DefMissingName, "", "declaration has no name")
	}
	if d.Kind != KindInterface {
		add(diag.SynthNotInterface, "", "%s %s cannot be doubled; only interfaces can", d.Kind, d.Name)
	}

	assoc := make(map[string]struct{}, len(d.Associated))
	for _, a := range d.Associated {
		if a.Name == "" {
			add(diag.DefMissingName, "", "associated type has no name")
			continue
		}
		if _, dup := assoc[a.Name]; dup {
			add(diag.SynthDuplicateAssociated, "", "associated type %q declared twice", a.Name)
			continue
		}
		assoc[a.Name] = struct{}{}
	}
	for _, r := range d.Requirements {
		if _, ok := assoc[r.Subject]; !ok && r.Subject != "Self" {
			add(diag.SynthUnknownAssociatedType, "", "requirement %q names no associated type", r.String())
		}
	}
	for i, m := range d.Members {
		if m == nil {
			add(diag.SynthMalformedMember, "", "member %d is empty", i+1)
			continue
		}
		switch m := m.(type) {
		case *Property:
			if m.Name == "" {
				add(diag.SynthMalformedMember, "", "member %d: property has no name", i+1)
			}
		case *Method:
			if m.Name == "" {
				add(diag.SynthMalformedMember, "", "member %d: method has no name", i+1)
			}
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
