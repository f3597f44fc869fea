package format

import (
	"strings"
	"testing"

	"mocksmith/internal/decl"
	"mocksmith/internal/typeexpr"
)

func lines(s ...string) string { return strings.Join(s, "\n") }

func descriptor(owner, member string) decl.Expr {
	return &decl.Construct{
		Type: typeexpr.Ident("Descriptor"),
		Args: []decl.Arg{
			{Label: "owner", Value: &decl.StringLit{Value: owner}},
			{Label: "member", Value: &decl.StringLit{Value: member}},
		},
	}
}

func TestField(t *testing.T) {
	f := &decl.Field{
		Modifiers: decl.Modifiers{"private", "nonisolated"},
		Name:      "__fetch",
		Init: &decl.Construct{
			Type: typeexpr.Ident("ThrowingFunc", typeexpr.Ident("Int")),
			Args: []decl.Arg{{Label: "descriptor", Value: descriptor("Store", "fetch()")}},
		},
	}
	want := `private nonisolated let __fetch = ThrowingFunc<Int>(descriptor: Descriptor(owner: "Store", member: "fetch()"))`
	if got := Decl(f, Options{}); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}

	f.Mutable = true
	f.Modifiers = append(f.Modifiers, "static")
	if got := Decl(f, Options{}); !strings.HasPrefix(got, "private nonisolated static var __fetch = ") {
		t.Errorf("static field: %s", got)
	}
}

func TestProperty(t *testing.T) {
	ret := []decl.Stmt{&decl.Return{Value: decl.Id("__count")}}
	plain := &decl.Property{
		Modifiers: decl.Modifiers{"public"},
		Name:      "_count",
		Type:      typeexpr.Ident("Int"),
		Get:       &decl.Accessor{Body: ret},
	}
	want := lines(
		"public var _count: Int {",
		"    return __count",
		"}",
	)
	if got := Decl(plain, Options{}); got != want {
		t.Errorf("plain getter:\n%s", got)
	}

	get := &decl.Return{Value: decl.Effectful(decl.CallOf(decl.Sel(decl.Id("__count"), "get")), true, true)}
	set := &decl.ExprStmt{X: decl.CallOf(decl.Sel(decl.Id("__count"), "set"), decl.Arg{Value: decl.Id("newValue")})}
	full := &decl.Property{
		Name: "count",
		Type: typeexpr.Ident("Int"),
		Get:  &decl.Accessor{Async: true, Throws: true, Body: []decl.Stmt{get}},
		Set:  &decl.Accessor{Body: []decl.Stmt{set}},
	}
	want = lines(
		"var count: Int {",
		"    get async throws {",
		"        return try await __count.get()",
		"    }",
		"    set {",
		"        __count.set(newValue)",
		"    }",
		"}",
	)
	if got := Decl(full, Options{}); got != want {
		t.Errorf("accessors:\n%s", got)
	}
}

func TestFuncWithDoCatch(t *testing.T) {
	fn := &decl.Func{
		Name:   "fetch",
		Params: []decl.Param{{Label: "_", Name: "id", Type: typeexpr.Ident("Int")}},
		Throws: true,
		Result: typeexpr.Ident("String"),
		Body: []decl.Stmt{
			&decl.Let{Name: "_index", Value: decl.CallOf(decl.Sel(decl.Id("__fetch"), "recordInput"),
				decl.Arg{Value: &decl.TupleExpr{Elems: []decl.Arg{{Label: "id", Value: decl.Id("id")}}}})},
			&decl.Let{Name: "_raw", Type: typeexpr.Ident("String")},
			&decl.DoCatch{
				Body:  []decl.Stmt{&decl.Assign{Target: decl.Id("_raw"), Value: &decl.Try{X: decl.CallOf(decl.Id("_perform"), decl.Arg{Value: decl.Id("id")})}}},
				Catch: []decl.Stmt{&decl.Throw{X: decl.Id("error")}},
			},
			&decl.Return{Value: decl.Id("_raw")},
		},
	}
	want := lines(
		"func fetch(_ id: Int) throws -> String {",
		"    let _index = __fetch.recordInput((id: id))",
		"    let _raw: String",
		"    do {",
		"        _raw = try _perform(id)",
		"    } catch {",
		"        throw error",
		"    }",
		"    return _raw",
		"}",
	)
	if got := Decl(fn, Options{}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenericFuncAndCast(t *testing.T) {
	fn := &decl.Func{
		Name:       "method",
		TypeParams: []typeexpr.GenericParam{{Name: "V", Inherited: typeexpr.Ident("Comparable")}},
		Params:     []decl.Param{{Name: "p", Type: typeexpr.Ident("V")}},
		Async:      true,
		Result:     typeexpr.Ident("V"),
		Where:      []typeexpr.Requirement{{Subject: "V", Type: typeexpr.Ident("Sendable")}},
		Body: []decl.Stmt{
			&decl.CheckedCast{Name: "_result", Value: decl.Id("_raw"), Type: typeexpr.Ident("V"), Message: `Store.method(p:): expected V`},
			&decl.Return{Value: decl.Id("_result")},
		},
	}
	want := lines(
		"func method<V: Comparable>(p: V) async -> V where V: Sendable {",
		"    guard let _result = _raw as? V else {",
		`        fatalError("Store.method(p:): expected V, got \(Swift.type(of: _raw))")`,
		"    }",
		"    return _result",
		"}",
	)
	if got := Decl(fn, Options{}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCastTrapWithParameterNamedType(t *testing.T) {
	fn := &decl.Func{
		Name:       "decode",
		TypeParams: []typeexpr.GenericParam{{Name: "T", Inherited: typeexpr.Ident("Decodable")}},
		Params:     []decl.Param{{Label: "_", Name: "type", Type: &typeexpr.Metatype{Base: typeexpr.Ident("T")}}},
		Result:     typeexpr.Ident("T"),
		Body: []decl.Stmt{
			&decl.Let{Name: "_raw", Value: decl.CallOf(decl.Id("_perform"), decl.Arg{Value: decl.Id("type")})},
			&decl.CheckedCast{Name: "_result", Value: decl.Id("_raw"), Type: typeexpr.Ident("T"), Message: "Decoder.decode(_:): expected T"},
			&decl.Return{Value: decl.Id("_result")},
		},
	}
	want := lines(
		"func decode<T: Decodable>(_ type: T.Type) -> T {",
		"    let _raw = _perform(type)",
		"    guard let _result = _raw as? T else {",
		`        fatalError("Decoder.decode(_:): expected T, got \(Swift.type(of: _raw))")`,
		"    }",
		"    return _result",
		"}",
	)
	got := Decl(fn, Options{})
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "\\(type(of:") {
		t.Errorf("unqualified type(of:) is shadowed by the parameter")
	}
}

func TestEnum(t *testing.T) {
	e := &decl.Enum{
		Name:       "FetchImplementation",
		TypeParams: []string{"Arguments", "ReturnValue"},
		Aliases: []*decl.TypeAlias{{
			Name: "Closure",
			Type: &typeexpr.Function{Params: []typeexpr.Expr{typeexpr.Ident("Int")}, Result: typeexpr.Ident("String")},
		}},
		Cases: []decl.Case{
			{Name: "unimplemented"},
			{Name: "invokes", Payload: []typeexpr.Expr{typeexpr.Ident("Closure")}},
		},
	}
	want := lines(
		"enum FetchImplementation<Arguments, ReturnValue> {",
		"    typealias Closure = (Int) -> String",
		"",
		"    case unimplemented",
		"    case invokes(Closure)",
		"}",
	)
	if got := Decl(e, Options{}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestClassLayout(t *testing.T) {
	c := &decl.Class{
		Attributes: []string{"MainActor"},
		Modifiers:  decl.Modifiers{"public", "final"},
		Name:       "StoreMock",
		TypeParams: []typeexpr.GenericParam{{Name: "Item"}},
		Conforms:   []typeexpr.Expr{typeexpr.Ident("Store")},
		Members: []decl.Decl{
			&decl.Init{Modifiers: decl.Modifiers{"public"}},
			&decl.Field{Modifiers: decl.Modifiers{"private"}, Name: "__x", Init: decl.Id("y")},
		},
	}
	want := lines(
		"// Code generated by mocksmith. DO NOT EDIT.",
		"",
		"@MainActor",
		"public final class StoreMock<Item>: Store {",
		"\tpublic init() {}",
		"",
		"\tprivate let __x = y",
		"}",
		"",
	)
	got := string(File([]decl.Decl{c}, Options{UseTabs: true, Header: []string{"Code generated by mocksmith. DO NOT EDIT."}}))
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestIndentWidth(t *testing.T) {
	p := &decl.Property{Name: "x", Type: typeexpr.Ident("Int"), Get: &decl.Accessor{Body: []decl.Stmt{&decl.Return{Value: decl.Id("y")}}}}
	if got := Decl(p, Options{IndentWidth: 2}); got != "var x: Int {\n  return y\n}" {
		t.Errorf("got %q", got)
	}
}

func TestStringEscaping(t *testing.T) {
	got := expr(&decl.StringLit{Value: "a\"b\\c\n"})
	if got != `"a\"b\\c\n"` {
		t.Errorf("got %s", got)
	}
	if got := expr(&decl.ImplicitMember{Name: "success", Args: []decl.Arg{{Value: &decl.TupleExpr{}}}}); got != ".success(())" {
		t.Errorf("implicit member: %s", got)
	}
	if got := expr(decl.CallOf(decl.Id("f"), decl.Arg{Value: &decl.InOut{X: decl.Id("x")}})); got != "f(&x)" {
		t.Errorf("inout: %s", got)
	}
}
