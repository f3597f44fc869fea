package diag

import "fmt"

// Span is a byte range inside Snippet (the text that was parsed).
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

type Note struct {
	Msg string
}

// Diagnostic is one finding. File, Owner and Member locate it; Snippet and
// Primary point into the fragment of text that failed to parse, when there is
// one.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Owner    string
	Member   string
	Snippet  string
	Primary  Span
	Notes    []Note
}

func New(sev Severity, code Code, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
	}
}

func NewError(code Code, msg string) Diagnostic {
	return New(SevError, code, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg})
	return d
}

// At attaches the parsed fragment and the offending range.
func (d Diagnostic) At(snippet string, sp Span) Diagnostic {
	d.Snippet = snippet
	d.Primary = sp
	return d
}

// InFile sets the file the diagnostic belongs to.
func (d Diagnostic) InFile(path string) Diagnostic {
	d.File = path
	return d
}

// Location renders "file: Owner.member" with empty parts skipped.
func (d Diagnostic) Location() string {
	loc := d.File
	subject := d.Owner
	if d.Member != "" {
		if subject != "" {
			subject += "."
		}
		subject += d.Member
	}
	if subject != "" {
		if loc != "" {
			loc += ": "
		}
		loc += subject
	}
	return loc
}
