package defs

import (
	"os"
	"path/filepath"
	"testing"

	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
)

const storeYAML = `
interfaces:
  - name: Store
    access: public
    isolated: true
    associated:
      - name: Item
        inherits: Hashable
    where: ["Item: Sendable"]
    members:
      - init: "(name: String)"
      - property: "count: Int"
        get: [async, throws]
      - property: "title: String"
        set: [mutating]
      - method: "fetch<V: Comparable>(p: V) -> V where V: Sendable"
      - method: "static func reset()"
`

func TestParse(t *testing.T) {
	bag := diag.NewBag(10)
	decls := Parse("store.yaml", []byte(storeYAML), bag)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %+v", bag.Items())
	}
	if len(decls) != 1 {
		t.Fatalf("decls = %d", len(decls))
	}
	d := decls[0]
	if d.Name != "Store" || d.Access != iface.AccessPublic || !d.Isolated || d.Kind != iface.KindInterface {
		t.Errorf("decl header = %+v", d)
	}
	if len(d.Associated) != 1 || d.Associated[0].String() != "Item: Hashable" {
		t.Errorf("associated = %v", d.Associated)
	}
	if len(d.Requirements) != 1 || d.Requirements[0].String() != "Item: Sendable" {
		t.Errorf("requirements = %v", d.Requirements)
	}
	if len(d.Members) != 5 {
		t.Fatalf("members = %d", len(d.Members))
	}

	count := d.Members[1].(*iface.Property)
	if !count.Effects.Async || !count.Effects.Throws || count.Settable {
		t.Errorf("count = %+v", count)
	}
	title := d.Members[2].(*iface.Property)
	if !title.Settable || !title.Effects.MutatingSet {
		t.Errorf("title = %+v", title)
	}
	fetch := d.Members[3].(*iface.Method)
	if typeexpr.String(fetch.Result) != "V" || len(fetch.ScopeRequirements) != 1 {
		t.Errorf("fetch = %+v", fetch)
	}
	if !d.Members[4].(*iface.Method).IsStatic() {
		t.Errorf("reset is not static")
	}
}

func TestParseReportsProblems(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown field", "interfaces:\n  - name: A\n    colour: red\n", diag.DefInvalidFile},
		{"empty", "", diag.DefInvalidFile},
		{"missing name", "interfaces:\n  - members: []\n", diag.DefMissingName},
		{"no kind", "interfaces:\n  - name: A\n    members:\n      - get: [async]\n", diag.DefUnknownMemberKind},
		{"two kinds", "interfaces:\n  - name: A\n    members:\n      - method: \"f()\"\n        init: \"()\"\n", diag.DefAmbiguousMember},
		{"effect", "interfaces:\n  - name: A\n    members:\n      - property: \"x: Int\"\n        get: [lazy]\n", diag.DefUnknownEffect},
		{"get on method", "interfaces:\n  - name: A\n    members:\n      - method: \"f()\"\n        get: [async]\n", diag.DefUnknownEffect},
		{"access", "interfaces:\n  - name: A\n    access: secret\n", diag.DefUnknownAccess},
		{"kind", "interfaces:\n  - name: A\n    kind: actor\n", diag.DefUnknownDeclKind},
		{"syntax", "interfaces:\n  - name: A\n    members:\n      - method: \"f(\"\n", diag.SynExpectIdentifier},
		{"duplicate", "interfaces:\n  - name: A\n  - name: A\n", diag.DefDuplicateInterface},
		{"associated requirement", "interfaces:\n  - name: A\n    where: [\"Key: Hashable\"]\n", diag.SynthUnknownAssociatedType},
		{"bad set", "interfaces:\n  - name: A\n    members:\n      - property: \"x: Int\"\n        set: [lazy]\n", diag.DefInvalidFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(10)
			Parse("defs.yaml", []byte(tt.src), bag)
			if bag.Len() == 0 {
				t.Fatalf("expected a diagnostic")
			}
			d := bag.Items()[0]
			if d.Code != tt.code {
				t.Errorf("code = %v, want %v (%s)", d.Code, tt.code, d.Message)
			}
			if d.File != "defs.yaml" {
				t.Errorf("file = %q", d.File)
			}
		})
	}
}

func TestParseKeepsGoodInterfaces(t *testing.T) {
	src := "interfaces:\n  - name: Good\n  - name: Bad\n    members:\n      - method: \"f(\"\n"
	bag := diag.NewBag(10)
	decls := Parse("mixed.yaml", []byte(src), bag)
	if len(decls) != 1 || decls[0].Name != "Good" {
		t.Errorf("decls = %v", decls)
	}
	if bag.Len() != 1 || bag.Items()[0].Owner != "Bad" {
		t.Errorf("diagnostics = %+v", bag.Items())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	if err := os.WriteFile(path, []byte(storeYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(10)
	if decls := Load(path, bag); len(decls) != 1 {
		t.Errorf("Load returned %d decls", len(decls))
	}

	bag = diag.NewBag(10)
	Load(filepath.Join(dir, "missing.yaml"), bag)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.IOReadFailure {
		t.Errorf("missing file: %+v", bag.Items())
	}
}
