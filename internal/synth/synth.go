// Package synth turns one interface member into the declarations that make up
// its recorder: the implementation-variant type, the backing field holding a
// runtime primitive, the exposed accessor and the conformance delegate.
package synth

import (
	"unicode"
	"unicode/utf8"

	"mocksmith/internal/decl"
	"mocksmith/internal/diag"
	"mocksmith/internal/erasure"
	"mocksmith/internal/iface"
)

// Names used in generated bodies.
const (
	descriptorType = "Descriptor"
	indexVar       = "_index"
	performVar     = "_perform"
	rawVar         = "_raw"
	resultVar      = "_result"
	newValueVar    = "newValue"
	errorVar       = "error"
)

type Options struct {
	// StdModule is forwarded to the erasure engine.
	StdModule string
}

// Synthesizer is stateless apart from its erasure engine and safe for
// concurrent use.
type Synthesizer struct {
	eng *erasure.Engine
}

func New(opts Options) *Synthesizer {
	return &Synthesizer{eng: erasure.New(erasure.Options{StdModule: opts.StdModule})}
}

// Recorder is everything synthesized for one member. Initializers only fill
// Name, Display and Delegate.
type Recorder struct {
	Name    string
	Display string
	Shape   Shape

	Variant  *decl.Enum
	Backing  *decl.Field
	Accessor *decl.Property
	Delegate decl.Decl

	// ReturnErased is set when the delegate narrows the result back with a
	// checked cast.
	ReturnErased bool
	// Erased is set when any parameter or the result lost a method generic.
	Erased bool
	Static bool
}

// Decls returns the recorder's declarations in emission order.
func (r *Recorder) Decls() []decl.Decl {
	out := make([]decl.Decl, 0, 4)
	if r.Variant != nil {
		out = append(out, r.Variant)
	}
	if r.Backing != nil {
		out = append(out, r.Backing)
	}
	if r.Accessor != nil {
		out = append(out, r.Accessor)
	}
	if r.Delegate != nil {
		out = append(out, r.Delegate)
	}
	return out
}

// BackingName and AccessorName derive the generated member names.
func BackingName(name string) string  { return "__" + name }
func AccessorName(name string) string { return "_" + name }

// VariantName is the implementation-variant type for a recorder name.
func VariantName(name string) string { return upperFirst(name) + "Implementation" }

// Member synthesizes m using its own name as the recorder name.
func (s *Synthesizer) Member(owner *iface.Decl, m iface.Member) (*Recorder, error) {
	return s.Named(owner, m, RecorderBase(m))
}

// Named synthesizes m under the given recorder name. Overloaded methods share
// a source name, so the caller picks distinct recorder names.
func (s *Synthesizer) Named(owner *iface.Decl, m iface.Member, name string) (*Recorder, error) {
	if owner == nil || owner.Kind != iface.KindInterface {
		kind, ownerName := "nothing", ""
		if owner != nil {
			kind, ownerName = owner.Kind.String(), owner.Name
		}
		return nil, diag.Errorf(diag.SynthNotInterface, "cannot synthesize a double for a %s", kind).
			WithSubject(ownerName, "")
	}
	var (
		rec *Recorder
		err error
	)
	switch m := m.(type) {
	case *iface.Initializer:
		rec, err = s.initializer(owner, m)
	case *iface.Property:
		rec, err = s.property(owner, m, name)
	case *iface.Method:
		rec, err = s.method(owner, m, name)
	default:
		err = diag.Errorf(diag.SynthMalformedMember, "unsupported member %T", m)
	}
	if err != nil {
		if de, ok := err.(*diag.Error); ok {
			member := ""
			if m != nil {
				member = m.MemberName()
			}
			de.WithSubject(owner.Name, member)
		}
		return nil, err
	}
	return rec, nil
}

// RecorderBase is the default recorder name of a member.
func RecorderBase(m iface.Member) string {
	switch m := m.(type) {
	case *iface.Initializer:
		return "init"
	case *iface.Property:
		return m.Name
	case *iface.Method:
		return m.Name
	}
	return ""
}

func display(owner *iface.Decl, m iface.Member) string {
	return owner.Name + "." + m.MemberName()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
