package synth

import (
	"errors"
	"testing"

	"mocksmith/internal/decl"
	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
	"mocksmith/internal/typeparse"
)

func store() *iface.Decl {
	return &iface.Decl{
		Kind:       iface.KindInterface,
		Name:       "Store",
		Access:     iface.AccessPublic,
		Associated: []typeexpr.GenericParam{{Name: "Item", Inherited: typeexpr.Ident("Hashable")}},
	}
}

func method(t *testing.T, src string) *iface.Method {
	t.Helper()
	m, err := typeparse.ParseMethod(src)
	if err != nil {
		t.Fatalf("ParseMethod(%q): %v", src, err)
	}
	return m
}

func synthesize(t *testing.T, owner *iface.Decl, m iface.Member) *Recorder {
	t.Helper()
	rec, err := New(Options{}).Member(owner, m)
	if err != nil {
		t.Fatalf("Member(%s): %v", m.MemberName(), err)
	}
	return rec
}

func checkedCasts(body []decl.Stmt) []*decl.CheckedCast {
	var out []*decl.CheckedCast
	decl.Inspect(body, func(s decl.Stmt) {
		if cc, ok := s.(*decl.CheckedCast); ok {
			out = append(out, cc)
		}
	})
	return out
}

func TestGenericMethodWithBoundAndRequirement(t *testing.T) {
	rec := synthesize(t, store(), method(t, "method<V: Comparable>(p: V) -> V where V: Sendable"))

	if rec.Shape != ShapeMethod {
		t.Errorf("shape = %v", rec.Shape)
	}
	if !rec.ReturnErased {
		t.Errorf("expected erased return")
	}
	if rec.Variant == nil || rec.Variant.Name != "MethodImplementation" {
		t.Fatalf("variant = %+v", rec.Variant)
	}
	if got := typeexpr.String(rec.Variant.Aliases[0].Type); got != "(any (Comparable & Sendable)) -> any (Comparable & Sendable)" {
		t.Errorf("closure = %s", got)
	}
	if got := typeexpr.String(rec.Accessor.Type); got != "Method<MethodImplementation<(p: any (Comparable & Sendable)), any (Comparable & Sendable)>>" {
		t.Errorf("primitive = %s", got)
	}

	fn := rec.Delegate.(*decl.Func)
	casts := checkedCasts(fn.Body)
	if len(casts) != 1 {
		t.Fatalf("expected one checked cast, got %d", len(casts))
	}
	if got := typeexpr.String(casts[0].Type); got != "V" {
		t.Errorf("cast target = %s", got)
	}
	if casts[0].Message != "Store.method(p:): expected V" {
		t.Errorf("cast message = %q", casts[0].Message)
	}
	if len(fn.TypeParams) != 1 || len(fn.Where) != 1 {
		t.Errorf("delegate lost its generic signature")
	}
}

func TestDictionaryErasesToHashableKeys(t *testing.T) {
	rec := synthesize(t, store(), method(t, "method<K, V>(p: [K: V]) -> [K: V]"))
	if got := typeexpr.String(rec.Variant.Aliases[0].Type); got != "([AnyHashable: Any]) -> [AnyHashable: Any]" {
		t.Errorf("closure = %s", got)
	}
}

func TestNoParameterMethodSkipsVariant(t *testing.T) {
	rec := synthesize(t, store(), method(t, "value() throws -> Int"))
	if rec.Shape != ShapeThrowingFunc {
		t.Errorf("shape = %v", rec.Shape)
	}
	if rec.Variant != nil {
		t.Errorf("unexpected variant type")
	}
	if got := typeexpr.String(rec.Accessor.Type); got != "ThrowingFunc<Int>" {
		t.Errorf("primitive = %s", got)
	}
	if rec.ReturnErased || len(checkedCasts(rec.Delegate.(*decl.Func).Body)) != 0 {
		t.Errorf("non-generic member must not cast")
	}
}

func TestVariantCases(t *testing.T) {
	tests := []struct {
		src   string
		cases []string
	}{
		{"a(x: Int)", []string{"unimplemented", "invokes"}},
		{"b(x: Int) -> Int", []string{"unimplemented", "invokes", "returns"}},
		{"c(x: Int) throws", []string{"unimplemented", "invokes", "throws"}},
		{"d(x: Int) async throws -> Int", []string{"unimplemented", "invokes", "returns", "throws"}},
	}
	for _, tt := range tests {
		rec := synthesize(t, store(), method(t, tt.src))
		if len(rec.Variant.Cases) != len(tt.cases) {
			t.Errorf("%s: cases = %v", tt.src, rec.Variant.Cases)
			continue
		}
		for i, name := range tt.cases {
			if rec.Variant.Cases[i].Name != name {
				t.Errorf("%s: case %d = %s, want %s", tt.src, i, rec.Variant.Cases[i].Name, name)
			}
		}
	}
}

func TestMethodShapeTable(t *testing.T) {
	seen := make(map[Shape]bool)
	for _, returns := range []bool{false, true} {
		for _, async := range []bool{false, true} {
			for _, throws := range []bool{false, true} {
				for _, params := range []bool{false, true} {
					s := MethodShape(returns, async, throws, params)
					if seen[s] {
						t.Errorf("shape %v selected twice", s)
					}
					seen[s] = true
					if !s.IsMethod() || s.Returns() != returns || s.HasParams() != params {
						t.Errorf("MethodShape(%v, %v, %v, %v) = %v", returns, async, throws, params, s)
					}
				}
			}
		}
	}
	if MethodShape(true, true, true, true) != ShapeAsyncThrowingMethod {
		t.Errorf("async throwing returning method")
	}
	if MethodShape(false, true, false, false) != ShapeAsyncVoidFunc {
		t.Errorf("async void no-param method")
	}
}

func TestPropertyShapes(t *testing.T) {
	for i := 0; i < 8; i++ {
		settable, async, throws := i&4 != 0, i&2 != 0, i&1 != 0
		s := PropertyShape(settable, async, throws)
		if !s.IsProperty() {
			t.Errorf("PropertyShape(%v, %v, %v) = %v", settable, async, throws, s)
		}
	}
	if PropertyShape(true, true, true) != ShapeAsyncThrowingProperty {
		t.Errorf("async throwing settable property")
	}
	if PropertyShape(false, false, true) != ShapeThrowingReadOnlyProperty {
		t.Errorf("throwing read-only property")
	}
}

func TestProperty(t *testing.T) {
	p, err := typeparse.ParseProperty("count: Int")
	if err != nil {
		t.Fatal(err)
	}
	p.Effects = iface.Effects{Async: true, Throws: true, MutatingGet: true}
	p.Settable = true
	rec := synthesize(t, store(), p)

	if rec.Shape != ShapeAsyncThrowingProperty {
		t.Errorf("shape = %v", rec.Shape)
	}
	if got := typeexpr.String(rec.Accessor.Type); got != "AsyncThrowingProperty<Int>" {
		t.Errorf("primitive = %s", got)
	}
	prop := rec.Delegate.(*decl.Property)
	if !prop.Get.Async || !prop.Get.Throws || prop.Set == nil || prop.Set.Async || prop.Set.Throws {
		t.Errorf("accessor effects: get=%+v set=%+v", prop.Get, prop.Set)
	}
	ret := prop.Get.Body[0].(*decl.Return)
	try, ok := ret.Value.(*decl.Try)
	if !ok {
		t.Fatalf("getter does not try: %T", ret.Value)
	}
	if _, ok := try.X.(*decl.Await); !ok {
		t.Errorf("getter does not await: %T", try.X)
	}
}

func TestIsolatedOwnerMarksStorageNonisolated(t *testing.T) {
	owner := store()
	owner.Isolated = true
	rec := synthesize(t, owner, method(t, "ping()"))
	if !rec.Backing.Modifiers.Has("nonisolated") || !rec.Accessor.Modifiers.Has("nonisolated") {
		t.Errorf("backing=%v accessor=%v", rec.Backing.Modifiers, rec.Accessor.Modifiers)
	}
	if rec.Delegate.(*decl.Func).Modifiers.Has("nonisolated") {
		t.Errorf("delegate must stay isolated")
	}

	rec = synthesize(t, store(), method(t, "ping()"))
	if rec.Backing.Modifiers.Has("nonisolated") {
		t.Errorf("unisolated owner produced nonisolated storage")
	}
}

func TestStaticMember(t *testing.T) {
	rec := synthesize(t, store(), method(t, "class func shared() -> Int"))
	if !rec.Static || !rec.Backing.Mutable || !rec.Backing.Modifiers.Has("static") {
		t.Errorf("static recorder: %+v", rec.Backing)
	}
	if !rec.Delegate.(*decl.Func).Modifiers.Has("static") {
		t.Errorf("delegate not static")
	}
	reset, ok := ResetStmt(rec).(*decl.Assign)
	if !ok || reset.Value != rec.Backing.Init {
		t.Errorf("reset does not re-create the primitive")
	}
}

func TestAssociatedTypesAreNotErased(t *testing.T) {
	rec := synthesize(t, store(), method(t, "put<V>(item: Item, v: V) -> Item"))
	args := rec.Variant.Aliases[0].Type.(*typeexpr.Function)
	if got := typeexpr.String(args); got != "(Item, Any) -> Item" {
		t.Errorf("closure = %s", got)
	}
	if rec.ReturnErased {
		t.Errorf("associated result must not be cast")
	}
}

func TestParameterAttributes(t *testing.T) {
	rec := synthesize(t, store(), method(t, "log(_ parts: String...)"))
	if got := typeexpr.String(rec.Variant.Aliases[0].Type); got != "([String]) -> Void" {
		t.Errorf("variadic closure = %s", got)
	}

	rec = synthesize(t, store(), method(t, "fill(buffer: inout [Int])"))
	if got := typeexpr.String(rec.Variant.Aliases[0].Type); got != "(inout [Int]) -> Void" {
		t.Errorf("inout closure = %s", got)
	}
	fn := rec.Delegate.(*decl.Func)
	if got := typeexpr.String(fn.Params[0].Type); got != "inout [Int]" {
		t.Errorf("delegate param = %s", got)
	}
	var passesRef bool
	decl.Inspect(fn.Body, func(s decl.Stmt) {
		es, ok := s.(*decl.ExprStmt)
		if !ok {
			return
		}
		if call, ok := es.X.(*decl.Call); ok && len(call.Args) == 1 {
			_, passesRef = call.Args[0].Value.(*decl.InOut)
		}
	})
	if !passesRef {
		t.Errorf("inout argument not passed by reference")
	}
}

func TestInitializer(t *testing.T) {
	init, err := typeparse.ParseInitializer("init(name: String)")
	if err != nil {
		t.Fatal(err)
	}
	rec := synthesize(t, store(), init)
	d, ok := rec.Delegate.(*decl.Init)
	if !ok || len(d.Body) != 0 || len(d.Params) != 1 {
		t.Errorf("initializer = %+v", rec.Delegate)
	}
	if rec.Backing != nil || rec.Accessor != nil {
		t.Errorf("initializer must not record")
	}
}

func TestSynthesisErrors(t *testing.T) {
	tests := []struct {
		name  string
		owner *iface.Decl
		m     iface.Member
		code  diag.Code
	}{
		{"not interface", &iface.Decl{Kind: iface.KindStruct, Name: "S"}, method(t, "f()"), diag.SynthNotInterface},
		{"inout erased", store(), method(t, "swap<V>(a: inout V)"), diag.SynthInoutErased},
		{"unknown requirement", store(), method(t, "f<V>(v: V) where W: P"), diag.SynthUnknownScopeParam},
		{"duplicate generic", store(), method(t, "f<V, V>(v: V)"), diag.SynthDuplicateScopeParam},
		{"shadowed associated", store(), method(t, "f<Item>(v: Item)"), diag.SynthDuplicateScopeParam},
		{"variadic not last", store(), &iface.Method{Name: "f", Params: []iface.Param{
			{Name: "a", Type: typeexpr.Ident("Int"), Variadic: true},
			{Name: "b", Type: typeexpr.Ident("Int")},
		}}, diag.SynthVariadicNotLast},
		{"inout variadic", store(), &iface.Method{Name: "f", Params: []iface.Param{
			{Name: "a", Type: typeexpr.Ident("Int"), Variadic: true, InOut: true},
		}}, diag.SynthInoutVariadic},
		{"void property", store(), &iface.Property{Name: "p", Type: typeexpr.Void()}, diag.SynthVoidProperty},
		{"unnamed method", store(), &iface.Method{}, diag.SynthMalformedMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{}).Member(tt.owner, tt.m)
			if err == nil {
				t.Fatalf("expected error")
			}
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("untyped error %T", err)
			}
			if de.Diag.Code != tt.code {
				t.Errorf("code = %v, want %v (%v)", de.Diag.Code, tt.code, err)
			}
			if de.Diag.Owner != tt.owner.Name {
				t.Errorf("owner = %q", de.Diag.Owner)
			}
		})
	}
}

func TestRequirementOnAssociatedTypeIsAccepted(t *testing.T) {
	rec := synthesize(t, store(), method(t, "f<V>(v: V) where Item: Comparable"))
	if rec.Variant == nil {
		t.Fatalf("no variant")
	}
}

func TestCastsOnlyInDelegate(t *testing.T) {
	rec := synthesize(t, store(), method(t, "make<T: Decodable>() async throws -> T"))
	for _, d := range rec.Decls() {
		switch d := d.(type) {
		case *decl.Func:
			if len(checkedCasts(d.Body)) != 1 {
				t.Errorf("delegate casts = %d", len(checkedCasts(d.Body)))
			}
		case *decl.Property:
			if len(checkedCasts(d.Get.Body)) != 0 {
				t.Errorf("accessor casts")
			}
		}
	}
	if rec.Shape != ShapeAsyncThrowingFunc {
		t.Errorf("shape = %v", rec.Shape)
	}
	if got := typeexpr.String(rec.Accessor.Type); got != "AsyncThrowingFunc<any Decodable>" {
		t.Errorf("primitive = %s", got)
	}
}

func TestMetatypeParameterErasesToExistentialMetatype(t *testing.T) {
	rec := synthesize(t, store(), method(t, "decode<T: Decodable>(_ type: T.Type) -> T"))
	if got := typeexpr.String(rec.Variant.Aliases[0].Type); got != "(any Decodable.Type) -> any Decodable" {
		t.Errorf("closure = %s", got)
	}
	if got := typeexpr.String(rec.Accessor.Type); got != "Method<DecodeImplementation<(type: any Decodable.Type), any Decodable>>" {
		t.Errorf("primitive = %s", got)
	}
	fn := rec.Delegate.(*decl.Func)
	if got := typeexpr.String(fn.Params[0].Type); got != "T.Type" {
		t.Errorf("delegate parameter = %s", got)
	}
	casts := checkedCasts(fn.Body)
	if len(casts) != 1 || typeexpr.String(casts[0].Type) != "T" {
		t.Errorf("casts = %+v", casts)
	}
}

func TestVoidDelegateDiscardsIndex(t *testing.T) {
	tests := []struct {
		src  string
		kept bool
	}{
		{"notify(x: Int)", false},
		{"ping()", false},
		{"ping() async", false},
		{"notify(x: Int) throws", true},
		{"count(x: Int) -> Int", true},
	}
	for _, tt := range tests {
		fn := synthesize(t, store(), method(t, tt.src)).Delegate.(*decl.Func)
		var kept, discarded bool
		for _, s := range fn.Body {
			switch s := s.(type) {
			case *decl.Let:
				kept = kept || s.Name == indexVar
			case *decl.Assign:
				if id, ok := s.Target.(*decl.Ident); ok && id.Name == "_" {
					discarded = true
				}
			}
		}
		if kept != tt.kept || discarded == tt.kept {
			t.Errorf("%s: index kept=%v discarded=%v", tt.src, kept, discarded)
		}
	}
}
