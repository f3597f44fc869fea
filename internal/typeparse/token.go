package typeparse

import "mocksmith/internal/diag"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLAngle   // <
	tokRAngle   // >
	tokLParen   // (
	tokRParen   // )
	tokLBracket // [
	tokRBracket // ]
	tokComma    // ,
	tokColon    // :
	tokQuestion // ?
	tokBang     // !
	tokAmp      // &
	tokDot      // .
	tokEllipsis // ...
	tokArrow    // ->
	tokEqEq     // ==
	tokAt       // @
	tokTilde    // ~
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokLAngle:
		return "'<'"
	case tokRAngle:
		return "'>'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokQuestion:
		return "'?'"
	case tokBang:
		return "'!'"
	case tokAmp:
		return "'&'"
	case tokDot:
		return "'.'"
	case tokEllipsis:
		return "'...'"
	case tokArrow:
		return "'->'"
	case tokEqEq:
		return "'=='"
	case tokAt:
		return "'@'"
	case tokTilde:
		return "'~'"
	}
	return "token"
}

type token struct {
	Kind tokenKind
	Text string
	Span diag.Span
}

func (t token) is(kind tokenKind) bool { return t.Kind == kind }

// isWord reports whether t is the identifier w (contextual keywords are
// plain identifiers at the lexer level).
func (t token) isWord(w string) bool { return t.Kind == tokIdent && t.Text == w }
