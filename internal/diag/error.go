package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the typed failure returned by parsing, loading and synthesis.
// Generation is all-or-nothing per declaration, so an Error always aborts
// the declaration it names.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Diag.Code.ID())
	if loc := e.Diag.Location(); loc != "" {
		sb.WriteByte(' ')
		sb.WriteString(loc)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Diag.Message)
	return sb.String()
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, fmt.Sprintf(format, args...))}
}

// WithSubject fills owner/member when they are not set yet.
func (e *Error) WithSubject(owner, member string) *Error {
	if e.Diag.Owner == "" {
		e.Diag.Owner = owner
	}
	if e.Diag.Member == "" {
		e.Diag.Member = member
	}
	return e
}

// CodeOf extracts the code of a wrapped *Error, UnknownCode otherwise.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag.Code
	}
	return UnknownCode
}

// Is lets errors.Is match on code: errors.Is(err, &diag.Error{Diag: diag.Diagnostic{Code: c}}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Diag.Code == e.Diag.Code
}
