package diag

import "strings"

// Severity orders diagnostics; a Bag sorts the most severe first and only
// SevError fails a generation run.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning covers definitions that still generate, e.g. an unknown
	// effect keyword that is ignored.
	SevWarning
	SevError
)

var severityLabels = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

// Label is the lower-case name printed by the terminal renderer.
func (s Severity) Label() string {
	if int(s) < len(severityLabels) {
		return severityLabels[s]
	}
	return "unknown"
}

// String is the upper-case name used in machine-readable output.
func (s Severity) String() string { return strings.ToUpper(s.Label()) }

// SarifLevel maps s onto the result.level vocabulary of SARIF 2.1.0.
func (s Severity) SarifLevel() string {
	switch s {
	case SevError, SevWarning:
		return s.Label()
	}
	return "note"
}
