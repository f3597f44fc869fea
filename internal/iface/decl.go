// Package iface models an interface specification: the contract a test
// double is synthesized for.
package iface

import (
	"fmt"
	"strings"

	"mocksmith/internal/typeexpr"
)

// DeclKind is the kind of declaration the definition names. Only
// KindInterface can be turned into a double.
type DeclKind uint8

const (
	KindInterface DeclKind = iota
	KindStruct
	KindClass
	KindEnum
)

func (k DeclKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindEnum:
		return "enum"
	}
	return fmt.Sprintf("DeclKind(%d)", k)
}

// ParseDeclKind maps a definition-file spelling to a DeclKind.
func ParseDeclKind(s string) (DeclKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interface", "protocol":
		return KindInterface, nil
	case "struct":
		return KindStruct, nil
	case "class":
		return KindClass, nil
	case "enum":
		return KindEnum, nil
	}
	return KindInterface, fmt.Errorf("unknown declaration kind %q (expected interface|struct|class|enum)", s)
}

// Access is the visibility of a declaration.
type Access uint8

const (
	AccessInternal Access = iota
	AccessPrivate
	AccessFileprivate
	AccessPackage
	AccessPublic
	AccessOpen
)

func (a Access) String() string {
	switch a {
	case AccessInternal:
		return "internal"
	case AccessPrivate:
		return "private"
	case AccessFileprivate:
		return "fileprivate"
	case AccessPackage:
		return "package"
	case AccessPublic:
		return "public"
	case AccessOpen:
		return "open"
	}
	return fmt.Sprintf("Access(%d)", a)
}

// ParseAccess maps a spelling to an Access level.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "internal":
		return AccessInternal, nil
	case "private":
		return AccessPrivate, nil
	case "fileprivate":
		return AccessFileprivate, nil
	case "package":
		return AccessPackage, nil
	case "public":
		return AccessPublic, nil
	case "open":
		return AccessOpen, nil
	}
	return AccessInternal, fmt.Errorf("unknown access level %q", s)
}

// Decl is an interface specification.
type Decl struct {
	Kind         DeclKind
	Name         string
	Access       Access
	Associated   []typeexpr.GenericParam
	Requirements []typeexpr.Requirement
	Members      []Member
	// Isolated means conforming types run inside a single mutual-exclusion
	// domain.
	Isolated bool
}

// AssociatedNames returns the set of associated-type names.
func (d *Decl) AssociatedNames() map[string]struct{} {
	out := make(map[string]struct{}, len(d.Associated))
	for _, a := range d.Associated {
		out[a.Name] = struct{}{}
	}
	return out
}
