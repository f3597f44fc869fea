package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Type-expression and signature syntax
	SynUnexpectedToken   Code = 1001
	SynUnexpectedEOF     Code = 1002
	SynExpectType        Code = 1003
	SynExpectIdentifier  Code = 1004
	SynUnclosedDelimiter Code = 1005
	SynUnknownChar       Code = 1006
	SynTrailingInput     Code = 1007
	SynExpectArrow       Code = 1008
	SynDuplicateLabel    Code = 1009

	// Interface definition files
	DefInvalidFile        Code = 2001
	DefMissingName        Code = 2002
	DefUnknownMemberKind  Code = 2003
	DefAmbiguousMember    Code = 2004
	DefUnknownEffect      Code = 2005
	DefUnknownAccess      Code = 2006
	DefUnknownDeclKind    Code = 2007
	DefDuplicateInterface Code = 2008

	// Synthesis
	SynthNotInterface          Code = 3001
	SynthMalformedMember       Code = 3002
	SynthVariadicNotLast       Code = 3003
	SynthInoutVariadic         Code = 3004
	SynthInoutErased           Code = 3005
	SynthUnknownScopeParam     Code = 3006
	SynthDuplicateScopeParam   Code = 3007
	SynthUnknownAssociatedType Code = 3008
	SynthVoidProperty          Code = 3009
	SynthDuplicateAssociated   Code = 3010

	// IO and project
	IOReadFailure      Code = 4001
	IOWriteFailure     Code = 4002
	ProjBadManifest    Code = 5001
	ProjNoInputs       Code = 5002
	ProjBadGlobPattern Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	SynUnexpectedToken:   "Unexpected token",
	SynUnexpectedEOF:     "Unexpected end of input",
	SynExpectType:        "Expected type",
	SynExpectIdentifier:  "Expected identifier",
	SynUnclosedDelimiter: "Unclosed delimiter",
	SynUnknownChar:       "Unknown character",
	SynTrailingInput:     "Unexpected trailing input",
	SynExpectArrow:       "Expected '->'",
	SynDuplicateLabel:    "Duplicate parameter name",

	DefInvalidFile:        "Invalid definition file",
	DefMissingName:        "Missing name",
	DefUnknownMemberKind:  "Unknown member kind",
	DefAmbiguousMember:    "Member declares more than one kind",
	DefUnknownEffect:      "Unknown effect",
	DefUnknownAccess:      "Unknown access level",
	DefUnknownDeclKind:    "Unknown declaration kind",
	DefDuplicateInterface: "Duplicate interface",

	SynthNotInterface:          "Declaration is not an interface",
	SynthMalformedMember:       "Malformed member",
	SynthVariadicNotLast:       "Variadic parameter must be last",
	SynthInoutVariadic:         "Variadic parameter cannot be inout",
	SynthInoutErased:           "inout parameter depends on a method generic",
	SynthUnknownScopeParam:     "Requirement names an unknown generic parameter",
	SynthDuplicateScopeParam:   "Duplicate generic parameter",
	SynthUnknownAssociatedType: "Requirement names an unknown associated type",
	SynthVoidProperty:          "Property type cannot be Void",
	SynthDuplicateAssociated:   "Duplicate associated type",

	IOReadFailure:      "Read failure",
	IOWriteFailure:     "Write failure",
	ProjBadManifest:    "Invalid mocksmith.toml",
	ProjNoInputs:       "No input files",
	ProjBadGlobPattern: "Invalid input pattern",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DEF%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
