package typeparse

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"mocksmith/internal/diag"
)

// lexer turns a fragment into tokens up front; fragments are one signature
// long, so there is nothing to gain from streaming.
type lexer struct {
	src  string
	off  int
	toks []token
}

func offset(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("fragment offset overflow: %w", err))
	}
	return off
}

func tokenize(src string) ([]token, error) {
	lx := &lexer{src: src}
	for {
		lx.skipSpace()
		if lx.off >= len(lx.src) {
			end := offset(len(lx.src))
			lx.toks = append(lx.toks, token{Kind: tokEOF, Span: diag.Span{Start: end, End: end}})
			return lx.toks, nil
		}
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
}

func (lx *lexer) skipSpace() {
	for lx.off < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
		if !unicode.IsSpace(r) {
			return
		}
		lx.off += size
	}
}

func (lx *lexer) emit(kind tokenKind, start int, text string) {
	lx.toks = append(lx.toks, token{
		Kind: kind,
		Text: text,
		Span: diag.Span{Start: offset(start), End: offset(lx.off)},
	})
}

func (lx *lexer) next() error {
	start := lx.off
	c := lx.src[lx.off]
	switch c {
	case '<':
		lx.off++
		lx.emit(tokLAngle, start, "<")
	case '>':
		lx.off++
		lx.emit(tokRAngle, start, ">")
	case '(':
		lx.off++
		lx.emit(tokLParen, start, "(")
	case ')':
		lx.off++
		lx.emit(tokRParen, start, ")")
	case '[':
		lx.off++
		lx.emit(tokLBracket, start, "[")
	case ']':
		lx.off++
		lx.emit(tokRBracket, start, "]")
	case ',':
		lx.off++
		lx.emit(tokComma, start, ",")
	case ':':
		lx.off++
		lx.emit(tokColon, start, ":")
	case '?':
		lx.off++
		lx.emit(tokQuestion, start, "?")
	case '!':
		lx.off++
		lx.emit(tokBang, start, "!")
	case '&':
		lx.off++
		lx.emit(tokAmp, start, "&")
	case '@':
		lx.off++
		lx.emit(tokAt, start, "@")
	case '~':
		lx.off++
		lx.emit(tokTilde, start, "~")
	case '.':
		if lx.hasPrefix("...") {
			lx.off += 3
			lx.emit(tokEllipsis, start, "...")
			return nil
		}
		lx.off++
		lx.emit(tokDot, start, ".")
	case '-':
		if !lx.hasPrefix("->") {
			return lx.unknown(start)
		}
		lx.off += 2
		lx.emit(tokArrow, start, "->")
	case '=':
		if !lx.hasPrefix("==") {
			return lx.unknown(start)
		}
		lx.off += 2
		lx.emit(tokEqEq, start, "==")
	default:
		r, _ := utf8.DecodeRuneInString(lx.src[lx.off:])
		if !isIdentStart(r) {
			return lx.unknown(start)
		}
		lx.scanIdent()
	}
	return nil
}

func (lx *lexer) hasPrefix(p string) bool {
	return len(lx.src)-lx.off >= len(p) && lx.src[lx.off:lx.off+len(p)] == p
}

func (lx *lexer) scanIdent() {
	start := lx.off
	for lx.off < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
		if !isIdentContinue(r) {
			break
		}
		lx.off += size
	}
	// identifiers compare by code points downstream
	lx.emit(tokIdent, start, norm.NFC.String(lx.src[start:lx.off]))
}

func (lx *lexer) unknown(start int) error {
	r, size := utf8.DecodeRuneInString(lx.src[start:])
	sp := diag.Span{Start: offset(start), End: offset(start + size)}
	d := diag.NewError(diag.SynUnknownChar, fmt.Sprintf("unexpected character %q", r)).At(lx.src, sp)
	return &diag.Error{Diag: d}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
