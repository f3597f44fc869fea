package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mocksmith/internal/diag"
)

type palette struct {
	err, warn, info, code, caret, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		code:  color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		dim:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.caret, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty пишет диагностики в человекочитаемом виде. Порядок берётся из
// bag.Items(), так что bag.Sort() вызывается заранее.
//
//	store.mock.yaml: Store.members[3]: error SYN1001: unexpected token ":"
//	    fetch(p V) -> V
//	            ^
//	    = note: ...
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	n := limit(len(items), opts.Max)
	for i := range n {
		writeOne(w, &items[i], p, opts)
	}
	if n < len(items) {
		fmt.Fprintf(w, "%s\n", p.dim.Sprintf("... and %d more", len(items)-n))
	}
}

func writeOne(w io.Writer, d *diag.Diagnostic, p palette, opts PrettyOpts) {
	shown := *d
	shown.File = formatPath(d.File, opts.PathMode, opts.BaseDir)
	loc := shown.Location()
	var sb strings.Builder
	if loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.Label()))
	sb.WriteByte(' ')
	sb.WriteString(p.code.Sprint(d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	fmt.Fprintln(w, sb.String())

	if d.Snippet != "" {
		fmt.Fprintf(w, "    %s\n", d.Snippet)
		fmt.Fprintf(w, "    %s\n", p.caret.Sprint(caretLine(d.Snippet, d.Primary)))
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "    %s %s\n", p.dim.Sprint("= note:"), note.Msg)
		}
	}
}

// caretLine underlines sp inside snippet, measured in display columns so
// wide runes stay aligned.
func caretLine(snippet string, sp diag.Span) string {
	start := min(int(sp.Start), len(snippet))
	end := min(max(int(sp.End), start), len(snippet))
	pad := runewidth.StringWidth(snippet[:start])
	width := max(runewidth.StringWidth(snippet[start:end]), 1)
	return strings.Repeat(" ", pad) + strings.Repeat("^", width)
}
