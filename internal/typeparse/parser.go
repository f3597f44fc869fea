// Package typeparse reads the textual notation used in interface definition
// files: type expressions, method signatures, parameter lists and
// where-clause requirements.
package typeparse

import (
	"fmt"

	"mocksmith/internal/diag"
	"mocksmith/internal/typeexpr"
)

// Words that prefix a type as specifiers.
var specifierWords = map[string]bool{
	"inout":     true,
	"consuming": true,
	"borrowing": true,
	"sending":   true,
	"__owned":   true,
	"__shared":  true,
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func newParser(src string) (*parser, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &parser{src: src, toks: toks}, nil
}

// ParseType parses a complete type expression.
func ParseType(src string) (typeexpr.Expr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(src string) typeexpr.Expr {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) at(kind tokenKind) bool { return p.peek().Kind == kind }

func (p *parser) atWord(w string) bool { return p.peek().isWord(w) }

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.Kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind tokenKind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) acceptWord(w string) bool {
	if p.atWord(w) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) errorf(code diag.Code, tok token, format string, args ...any) error {
	if tok.Kind == tokEOF && code == diag.SynUnexpectedToken {
		code = diag.SynUnexpectedEOF
	}
	d := diag.NewError(code, fmt.Sprintf(format, args...)).At(p.src, tok.Span)
	return &diag.Error{Diag: d}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.errorf(diag.SynUnexpectedToken, tok, "expected %s, found %s", kind, describe(tok))
	}
	return p.advance(), nil
}

func (p *parser) expectClose(kind tokenKind, open token) error {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return nil
	}
	err := p.errorf(diag.SynUnclosedDelimiter, tok, "expected %s to close %s, found %s", kind, describe(open), describe(tok))
	if de, ok := err.(*diag.Error); ok {
		de.Diag.Primary = de.Diag.Primary.Cover(open.Span)
	}
	return err
}

func (p *parser) expectIdent() (token, error) {
	tok := p.peek()
	if tok.Kind != tokIdent {
		return tok, p.errorf(diag.SynExpectIdentifier, tok, "expected identifier, found %s", describe(tok))
	}
	return p.advance(), nil
}

func (p *parser) expectEOF() error {
	if tok := p.peek(); tok.Kind != tokEOF {
		return p.errorf(diag.SynTrailingInput, tok, "unexpected %s after end of declaration", describe(tok))
	}
	return nil
}

func describe(tok token) string {
	if tok.Kind == tokIdent {
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Kind.String()
}

// parseType: composition := prefixed ('&' prefixed)*
func (p *parser) parseType() (typeexpr.Expr, error) {
	first, err := p.parsePrefixed()
	if err != nil {
		return nil, err
	}
	if !p.at(tokAmp) {
		return first, nil
	}
	elems := []typeexpr.Expr{first}
	for p.accept(tokAmp) {
		next, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	return &typeexpr.Composition{Elems: elems}, nil
}

// parsePrefixed handles specifiers, attributes, any/some, each, repeat, ~.
func (p *parser) parsePrefixed() (typeexpr.Expr, error) {
	var specs, attrs []string
	for {
		tok := p.peek()
		if tok.Kind == tokIdent && specifierWords[tok.Text] {
			p.advance()
			specs = append(specs, tok.Text)
			continue
		}
		if tok.Kind == tokAt {
			p.advance()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, name.Text)
			continue
		}
		break
	}
	if len(specs) > 0 || len(attrs) > 0 {
		base, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		return &typeexpr.Attributed{Base: base, Specifiers: specs, Attributes: attrs}, nil
	}

	tok := p.peek()
	switch {
	case tok.isWord("any"), tok.isWord("some"):
		p.advance()
		ex := &typeexpr.Existential{Opaque: tok.Text == "some"}
		if !p.startsType() {
			return ex, nil
		}
		c, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		if p.at(tokAmp) {
			elems := []typeexpr.Expr{c}
			for p.accept(tokAmp) {
				next, err := p.parsePostfix()
				if err != nil {
					return nil, err
				}
				elems = append(elems, next)
			}
			c = &typeexpr.Composition{Elems: elems}
		}
		ex.Constraint = c
		return ex, nil
	case tok.isWord("each"):
		p.advance()
		inner, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &typeexpr.PackElement{Inner: inner}, nil
	case tok.isWord("repeat"):
		p.advance()
		inner, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		return &typeexpr.PackExpansion{Inner: inner}, nil
	case tok.Kind == tokTilde:
		p.advance()
		inner, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &typeexpr.Suppressed{Inner: inner}, nil
	}
	return p.parsePostfix()
}

func (p *parser) startsType() bool {
	switch p.peek().Kind {
	case tokIdent, tokLParen, tokLBracket:
		return true
	}
	return false
}

// parsePostfix: primary ('?' | '!' | '.Type' | '.Name<Args>')*
func (p *parser) parsePostfix() (typeexpr.Expr, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept(tokQuestion):
			t = &typeexpr.Optional{Wrapped: t}
		case p.accept(tokBang):
			t = &typeexpr.ImplicitlyUnwrapped{Wrapped: t}
		case p.at(tokDot) && p.peekAt(1).Kind == tokIdent:
			p.advance()
			name := p.advance()
			if name.Text == "Type" {
				t = &typeexpr.Metatype{Base: t}
				continue
			}
			args, err := p.parseGenericArgs()
			if err != nil {
				return nil, err
			}
			t = &typeexpr.Member{Base: t, Name: name.Text, Args: args}
		default:
			return t, nil
		}
	}
}

func (p *parser) parsePrimary() (typeexpr.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case tokIdent:
		p.advance()
		if tok.Text == "class" {
			return &typeexpr.ClassRestriction{}, nil
		}
		args, err := p.parseGenericArgs()
		if err != nil {
			return nil, err
		}
		return &typeexpr.Identifier{Name: tok.Text, Args: args}, nil
	case tokLBracket:
		return p.parseBracketed()
	case tokLParen:
		return p.parseParenthesized()
	}
	return nil, p.errorf(diag.SynExpectType, tok, "expected type, found %s", describe(tok))
}

func (p *parser) parseGenericArgs() ([]typeexpr.Expr, error) {
	if !p.at(tokLAngle) {
		return nil, nil
	}
	open := p.advance()
	var args []typeexpr.Expr
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(tokComma) {
			break
		}
	}
	if err := p.expectClose(tokRAngle, open); err != nil {
		return nil, err
	}
	return args, nil
}

// parseBracketed: '[' T ']' | '[' K ':' V ']'
func (p *parser) parseBracketed() (typeexpr.Expr, error) {
	open := p.advance()
	first, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.accept(tokColon) {
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if err := p.expectClose(tokRBracket, open); err != nil {
			return nil, err
		}
		return &typeexpr.Dictionary{Key: first, Value: value}, nil
	}
	if err := p.expectClose(tokRBracket, open); err != nil {
		return nil, err
	}
	return &typeexpr.Array{Elem: first}, nil
}

// parseParenthesized reads a tuple and turns it into a function type when
// followed by async/throws/->.
func (p *parser) parseParenthesized() (typeexpr.Expr, error) {
	open := p.advance()
	var elems []typeexpr.TupleElem
	if !p.at(tokRParen) {
		for {
			el := typeexpr.TupleElem{}
			if p.at(tokIdent) && p.peekAt(1).Kind == tokColon {
				el.Label = p.advance().Text
				p.advance()
			} else if p.at(tokIdent) && p.peekAt(1).Kind == tokIdent && p.peekAt(2).Kind == tokColon &&
				!specifierWords[p.peek().Text] {
				// (_ x: Int) in a function parameter list
				p.advance()
				el.Label = p.advance().Text
				p.advance()
			}
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			el.Type = t
			elems = append(elems, el)
			if !p.accept(tokComma) {
				break
			}
		}
	}
	if err := p.expectClose(tokRParen, open); err != nil {
		return nil, err
	}

	async := p.acceptWord("async")
	throws := p.acceptWord("throws")
	if !async && !throws && !p.at(tokArrow) {
		return &typeexpr.Tuple{Elems: elems}, nil
	}
	if _, err := p.expect(tokArrow); err != nil {
		if de, ok := err.(*diag.Error); ok {
			de.Diag.Code = diag.SynExpectArrow
		}
		return nil, err
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	params := make([]typeexpr.Expr, len(elems))
	for i := range elems {
		params[i] = elems[i].Type
	}
	return &typeexpr.Function{Params: params, Async: async, Throws: throws, Result: result}, nil
}
