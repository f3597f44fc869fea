package synth

import (
	"mocksmith/internal/decl"
	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
)

// erasedSignature is a method signature with its method generics erased.
type erasedSignature struct {
	args    *typeexpr.Tuple // argument tuple recorded per invocation
	closure *typeexpr.Function
	result  typeexpr.Expr // nil when void
	// resultErased means the delegate must cast the closure's result back.
	resultErased bool
	erased       bool // any parameter or the result
}

func (s *Synthesizer) method(owner *iface.Decl, m *iface.Method, name string) (*Recorder, error) {
	if m.Name == "" {
		return nil, diag.Errorf(diag.SynthMalformedMember, "method has no name")
	}
	if err := validateParams(m.Params); err != nil {
		return nil, err
	}
	if err := validateScope(owner, m); err != nil {
		return nil, err
	}
	sig, err := s.eraseSignature(m)
	if err != nil {
		return nil, err
	}

	returns := m.Returns()
	hasParams := len(m.Params) > 0
	shape := MethodShape(returns, m.Effects.Async, m.Effects.Throws, hasParams)

	rec := &Recorder{
		Name:         name,
		Display:      display(owner, m),
		Shape:        shape,
		ReturnErased: sig.resultErased,
		Erased:       sig.erased,
		Static:       m.IsStatic(),
	}

	var prim typeexpr.Expr
	switch {
	case hasParams:
		rec.Variant = variant(name, sig, m.Effects.Throws)
		args := []typeexpr.Expr{sig.args}
		if returns {
			args = append(args, sig.result)
		}
		prim = typeexpr.Ident(shape.String(), typeexpr.Ident(rec.Variant.Name, args...))
	case returns:
		prim = typeexpr.Ident(shape.String(), sig.result)
	default:
		prim = typeexpr.Ident(shape.String())
	}
	rec.Backing, rec.Accessor = storage(owner, m, name, prim, rec.Static)
	rec.Delegate = delegate(owner, m, rec, sig)
	return rec, nil
}

// eraseSignature runs erasure over every parameter and the result. Without
// method generics the engine hands types back untouched.
func (s *Synthesizer) eraseSignature(m *iface.Method) (erasedSignature, error) {
	var sig erasedSignature
	scope, reqs := m.ScopeParams, m.ScopeRequirements

	sig.args = &typeexpr.Tuple{Elems: make([]typeexpr.TupleElem, 0, len(m.Params))}
	closureParams := make([]typeexpr.Expr, 0, len(m.Params))
	for _, p := range m.Params {
		r := s.eng.Erase(p.Type, scope, reqs)
		if p.InOut && r.Erased {
			// the caller's storage has the concrete type; an existential
			// cannot be written back through it
			return sig, diag.Errorf(diag.SynthInoutErased, "inout parameter %q has type %s, which depends on a method generic",
				p.Name, typeexpr.String(p.Type))
		}
		sig.erased = sig.erased || r.Erased
		t := r.Type
		if p.Variadic {
			t = &typeexpr.Array{Elem: t}
		}
		sig.args.Elems = append(sig.args.Elems, typeexpr.TupleElem{Label: p.Name, Type: t})
		if p.InOut {
			t = &typeexpr.Attributed{Base: t, Specifiers: []string{"inout"}}
		}
		closureParams = append(closureParams, t)
	}

	if m.Returns() {
		r := s.eng.Erase(m.Result, scope, reqs)
		sig.result = r.Type
		sig.resultErased = r.Erased
		sig.erased = sig.erased || r.Erased
	}
	sig.closure = &typeexpr.Function{
		Params: closureParams,
		Async:  m.Effects.Async,
		Throws: m.Effects.Throws,
		Result: sig.result,
	}
	return sig, nil
}

// variant builds `enum XImplementation<Arguments[, ReturnValue]>`.
func variant(name string, sig erasedSignature, throws bool) *decl.Enum {
	en := &decl.Enum{
		Name:       VariantName(name),
		TypeParams: []string{"Arguments"},
		Aliases:    []*decl.TypeAlias{{Name: "Closure", Type: sig.closure}},
		Cases: []decl.Case{
			{Name: "unimplemented"},
			{Name: "invokes", Payload: []typeexpr.Expr{typeexpr.Ident("Closure")}},
		},
	}
	if sig.result != nil {
		en.TypeParams = append(en.TypeParams, "ReturnValue")
		en.Cases = append(en.Cases, decl.Case{Name: "returns", Payload: []typeexpr.Expr{typeexpr.Ident("ReturnValue")}})
	}
	if throws {
		en.Cases = append(en.Cases, decl.Case{
			Name:    "throws",
			Payload: []typeexpr.Expr{&typeexpr.Existential{Constraint: typeexpr.Ident("Error")}},
		})
	}
	return en
}

func delegateParam(p iface.Param) decl.Param {
	t := p.Type
	var specs []string
	if p.InOut {
		specs = append(specs, "inout")
	}
	if p.Consuming {
		specs = append(specs, "consuming")
	}
	if len(specs) > 0 {
		t = &typeexpr.Attributed{Base: t, Specifiers: specs}
	}
	return decl.Param{Label: p.Label, Name: p.Name, Type: t, Variadic: p.Variadic}
}

// delegate implements the member by routing the call through the recorder:
//
//	let _index = __m.recordInput((a: a))  (`_ = ...` when nothing is recorded after)
//	let _perform = __m.perform()
//	let _raw = _perform(a)          (wrapped in do/catch when throwing)
//	__m.recordOutput(at: _index, .success(_raw))
//	guard let _result = _raw as? T  (only when the result was erased)
func delegate(owner *iface.Decl, m *iface.Method, rec *Recorder, sig erasedSignature) *decl.Func {
	backing := decl.Id(rec.Backing.Name)
	returns := sig.result != nil
	throws := m.Effects.Throws

	var body []decl.Stmt
	var input decl.Expr
	if len(m.Params) > 0 {
		tuple := &decl.TupleExpr{Elems: make([]decl.Arg, len(m.Params))}
		for i, p := range m.Params {
			tuple.Elems[i] = decl.Arg{Label: p.Name, Value: decl.Id(p.Name)}
		}
		input = decl.CallOf(decl.Sel(backing, "recordInput"), decl.Arg{Value: tuple})
	} else {
		input = decl.CallOf(decl.Sel(backing, "recordInput"))
	}
	if returns || throws {
		body = append(body, &decl.Let{Name: indexVar, Value: input})
	} else {
		// nothing is recorded on the way out
		body = append(body, &decl.Assign{Target: decl.Id("_"), Value: input})
	}
	body = append(body, &decl.Let{Name: performVar, Value: decl.CallOf(decl.Sel(backing, "perform"))})

	callArgs := make([]decl.Arg, len(m.Params))
	for i, p := range m.Params {
		var v decl.Expr = decl.Id(p.Name)
		if p.InOut {
			v = &decl.InOut{X: v}
		}
		callArgs[i] = decl.Arg{Value: v}
	}
	call := decl.Effectful(decl.CallOf(decl.Id(performVar), callArgs...), m.Effects.Async, throws)

	recordOutput := func(outcome string, v decl.Expr) decl.Stmt {
		return &decl.ExprStmt{X: decl.CallOf(decl.Sel(backing, "recordOutput"),
			decl.Arg{Label: "at", Value: decl.Id(indexVar)},
			decl.Arg{Value: &decl.ImplicitMember{Name: outcome, Args: []decl.Arg{{Value: v}}}},
		)}
	}
	success := decl.Expr(&decl.TupleExpr{})
	if returns {
		success = decl.Id(rawVar)
	}

	switch {
	case throws:
		var attempt decl.Stmt = &decl.ExprStmt{X: call}
		if returns {
			body = append(body, &decl.Let{Name: rawVar, Type: sig.result})
			attempt = &decl.Assign{Target: decl.Id(rawVar), Value: call}
		}
		body = append(body, &decl.DoCatch{
			Body: []decl.Stmt{attempt},
			Catch: []decl.Stmt{
				recordOutput("failure", decl.Id(errorVar)),
				&decl.Throw{X: decl.Id(errorVar)},
			},
		})
		body = append(body, recordOutput("success", success))
	case returns:
		body = append(body, &decl.Let{Name: rawVar, Value: call})
		body = append(body, recordOutput("success", success))
	default:
		body = append(body, &decl.ExprStmt{X: call})
	}

	if returns {
		if sig.resultErased {
			body = append(body,
				&decl.CheckedCast{
					Name:    resultVar,
					Value:   decl.Id(rawVar),
					Type:    m.Result,
					Message: rec.Display + ": expected " + typeexpr.String(m.Result),
				},
				&decl.Return{Value: decl.Id(resultVar)},
			)
		} else {
			body = append(body, &decl.Return{Value: decl.Id(rawVar)})
		}
	}

	params := make([]decl.Param, len(m.Params))
	for i, p := range m.Params {
		params[i] = delegateParam(p)
	}
	// static and class both become static on a final class; mutating and
	// override have no meaning there
	mods := modifiers(memberAccess(owner), flag(rec.Static, "static"))
	result := m.Result
	if !returns {
		result = nil
	}
	return &decl.Func{
		Modifiers:  mods,
		Name:       m.Name,
		TypeParams: m.ScopeParams,
		Params:     params,
		Async:      m.Effects.Async,
		Throws:     throws,
		Result:     result,
		Where:      m.ScopeRequirements,
		Body:       body,
	}
}
