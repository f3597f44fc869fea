// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"mocksmith/internal/diag"
	"mocksmith/internal/synth"
)

// CheckSpanInvariants runs a minimal set of span invariants on a diagnostic:
// 1) a non-empty span needs a snippet to point into
// 2) the span is ordered and fully contained in the snippet
// 3) both ends fall on rune boundaries
func CheckSpanInvariants(d *diag.Diagnostic) error {
	if d == nil {
		return fmt.Errorf("nil diagnostic")
	}
	sp := d.Primary
	if d.Snippet == "" {
		if !sp.Empty() && sp.Start != 0 {
			return fmt.Errorf("%s: span %v without snippet", d.Code.ID(), sp)
		}
		return nil
	}
	if sp.End < sp.Start {
		return fmt.Errorf("%s: span %v is reversed", d.Code.ID(), sp)
	}
	n, err := safecast.Conv[uint32](len(d.Snippet))
	if err != nil {
		return fmt.Errorf("%s: snippet too long: %w", d.Code.ID(), err)
	}
	if sp.End > n {
		return fmt.Errorf("%s: span %v exceeds snippet length %d", d.Code.ID(), sp, n)
	}
	for _, off := range []uint32{sp.Start, sp.End} {
		if off < n && !utf8.RuneStart(d.Snippet[off]) {
			return fmt.Errorf("%s: offset %d splits a rune in %q", d.Code.ID(), off, d.Snippet)
		}
	}
	return nil
}

// CheckErrorSpans applies CheckSpanInvariants to err when it is a *diag.Error.
func CheckErrorSpans(err error) error {
	de, ok := err.(*diag.Error)
	if !ok {
		return nil
	}
	return CheckSpanInvariants(&de.Diag)
}

// CheckRecorderNames verifies the naming scheme of a synthesized member:
// backing field, accessor and implementation variant are derived from the
// recorder name and never collide with each other.
func CheckRecorderNames(name string) error {
	names := []string{synth.BackingName(name), synth.AccessorName(name), synth.VariantName(name)}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" || n == name {
			return fmt.Errorf("derived name %q of %q", n, name)
		}
		if seen[n] {
			return fmt.Errorf("derived names of %q collide on %q", name, n)
		}
		seen[n] = true
	}
	return nil
}
