package erasure

import (
	"testing"

	"mocksmith/internal/typeexpr"
	"mocksmith/internal/typeparse"
)

func params(t *testing.T, srcs ...string) []typeexpr.GenericParam {
	t.Helper()
	out := make([]typeexpr.GenericParam, 0, len(srcs))
	for _, src := range srcs {
		gp, err := typeparse.ParseGenericParam(src)
		if err != nil {
			t.Fatalf("ParseGenericParam(%q): %v", src, err)
		}
		out = append(out, gp)
	}
	return out
}

func reqs(t *testing.T, srcs ...string) []typeexpr.Requirement {
	t.Helper()
	out := make([]typeexpr.Requirement, 0, len(srcs))
	for _, src := range srcs {
		r, err := typeparse.ParseRequirement(src)
		if err != nil {
			t.Fatalf("ParseRequirement(%q): %v", src, err)
		}
		out = append(out, r)
	}
	return out
}

func TestErase(t *testing.T) {
	scope := params(t, "V", "K: Hashable", "P: Comparable & Sendable", "C: class", "S", "T: Collection<V>")
	constraints := reqs(t, "S: Codable", "S: Sendable", "V == Int", "Other: Hashable")

	tests := []struct {
		in   string
		want string
	}{
		{"V", "Any"},
		{"[V]", "[Any]"},
		{"Array<V>", "Array<Any>"},
		{"Swift.Array<V>", "Swift.Array<Any>"},
		{"Optional<K>", "Optional<Any>"},
		{"Set<V>", "Set<AnyHashable>"},
		{"[V: V]", "[AnyHashable: Any]"},
		{"[String: V]", "[String: Any]"},
		{"Dictionary<String, V>", "Dictionary<String, Any>"},
		{"Custom<V>", "Any"},
		{"Result<V, Error>", "Any"},
		{"Foundation.Array<V>", "Any"},
		{"V?", "(Any)?"},
		{"V!", "(Any)!"},
		{"[V]?", "[Any]?"},
		{"K", "any Hashable"},
		{"K?", "(any Hashable)?"},
		{"P", "any (Comparable & Sendable)"},
		{"S", "any (Codable & Sendable)"},
		{"C", "any AnyObject"},
		{"T", "Any"},
		{"(V) async throws -> K", "(Any) async throws -> any Hashable"},
		{"(label: V, Int)", "(label: Any, Int)"},
		{"V.Element", "Any"},
		{"K.Type", "any Hashable.Type"},
		{"(some K).Type", "any Hashable.Type"},
		{"P.Type", "any (Comparable & Sendable).Type"},
		{"V.Type", "Any.Type"},
		{"any V", "Any"},
		{"some K", "any Hashable"},
		{"inout V", "inout Any"},
		{"@escaping (V) -> Void", "@escaping (Any) -> Void"},
	}
	for _, tt := range tests {
		in := typeparse.MustParseType(tt.in)
		got := Erase(in, scope, constraints)
		if !got.Erased {
			t.Errorf("Erase(%s): expected Erased", tt.in)
		}
		if s := typeexpr.String(got.Type); s != tt.want {
			t.Errorf("Erase(%s) = %s, want %s", tt.in, s, tt.want)
		}
	}
}

func TestEraseGenericMethodScenarios(t *testing.T) {
	// method<V: Comparable>(p: V) -> V where V: Sendable
	scope := params(t, "V: Comparable")
	constraints := reqs(t, "V: Sendable")
	got := Erase(typeexpr.Ident("V"), scope, constraints)
	if s := typeexpr.String(got.Type); s != "any (Comparable & Sendable)" {
		t.Errorf("bounded parameter erased to %s", s)
	}

	// method<K, V>(p: [K: V]) -> [K: V]
	scope = params(t, "K", "V")
	got = Erase(typeparse.MustParseType("[K: V]"), scope, nil)
	if s := typeexpr.String(got.Type); s != "[AnyHashable: Any]" {
		t.Errorf("dictionary erased to %s", s)
	}
}

func TestEraseConservative(t *testing.T) {
	scope := params(t, "V", "K: Hashable")
	corpus := []string{
		"Int",
		"[String: [Int]]",
		"Custom<Int>",
		"Swift.Set<String>",
		"(some Equatable).Type",
		"any Error",
		"(Int, label: String) async -> Bool",
		"Value",
		"Vector<Key>",
		"repeat each Element",
		"~Copyable",
		"String?",
	}
	for _, src := range corpus {
		in := typeparse.MustParseType(src)
		got := Erase(in, scope, nil)
		if got.Erased {
			t.Errorf("Erase(%s): unexpected erasure", src)
		}
		if got.Type != in {
			t.Errorf("Erase(%s): untouched tree was rebuilt", src)
		}
	}
}

func TestEraseIdempotent(t *testing.T) {
	scope := params(t, "V", "K: Hashable", "P: Comparable & Sendable", "T: Sequence<V>")
	constraints := reqs(t, "V: Codable")
	corpus := []string{
		"V", "[K: V]", "Set<K>", "V?", "K!", "Custom<V>", "P.Type",
		"(V, K) throws -> P", "T", "[[V]]", "Swift.Dictionary<K, [V]>",
		"some P", "(some K).Type",
	}
	for _, src := range corpus {
		once := Erase(typeparse.MustParseType(src), scope, constraints)
		twice := Erase(once.Type, scope, constraints)
		if !typeexpr.Equal(once.Type, twice.Type) {
			t.Errorf("Erase(%s) not idempotent: %s then %s", src,
				typeexpr.String(once.Type), typeexpr.String(twice.Type))
		}
		if twice.Erased {
			t.Errorf("Erase(%s): second pass still erased", src)
		}
	}
}

func TestEraseDoesNotMutateInput(t *testing.T) {
	scope := params(t, "V")
	in := typeparse.MustParseType("[String: (V, Int)]")
	before := typeexpr.String(in)
	Erase(in, scope, nil)
	if after := typeexpr.String(in); after != before {
		t.Errorf("input mutated: %s -> %s", before, after)
	}
}

func TestEraseEmptyScope(t *testing.T) {
	in := typeparse.MustParseType("V")
	got := Erase(in, nil, nil)
	if got.Erased || got.Type != in {
		t.Errorf("empty scope erased %s", typeexpr.String(got.Type))
	}
	if r := Erase(nil, params(t, "V"), nil); r.Type != nil || r.Erased {
		t.Errorf("nil type: %+v", r)
	}
}

func TestEngineStdModule(t *testing.T) {
	e := New(Options{StdModule: "Core"})
	scope := params(t, "V")
	got := e.Erase(typeparse.MustParseType("Core.Set<V>"), scope, nil)
	if s := typeexpr.String(got.Type); s != "Core.Set<AnyHashable>" {
		t.Errorf("Core.Set<V> erased to %s", s)
	}
	got = e.Erase(typeparse.MustParseType("Swift.Set<V>"), scope, nil)
	if s := typeexpr.String(got.Type); s != "Any" {
		t.Errorf("Swift.Set<V> under Core erased to %s", s)
	}
}

func TestBound(t *testing.T) {
	scope := params(t, "V: Comparable", "W")
	b, ok := New(Options{}).Bound("V", scope, reqs(t, "V: Sendable"))
	if !ok || typeexpr.String(b) != "any (Comparable & Sendable)" {
		t.Errorf("Bound(V) = %v, %v", b, ok)
	}
	b, ok = New(Options{}).Bound("W", scope, nil)
	if !ok || typeexpr.String(b) != "Any" {
		t.Errorf("Bound(W) = %v, %v", b, ok)
	}
	if _, ok := New(Options{}).Bound("X", scope, nil); ok {
		t.Errorf("Bound(X) should be unknown")
	}
}
