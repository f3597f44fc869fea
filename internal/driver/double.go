package driver

import (
	"context"
	"errors"
	"strconv"

	"mocksmith/internal/decl"
	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/synth"
	"mocksmith/internal/trace"
	"mocksmith/internal/typeexpr"
)

// ResetStaticName is the member that re-creates every static recorder.
const ResetStaticName = "resetStaticRecorders"

// Options shape the generated double.
type Options struct {
	// Suffix is appended to the interface name, "Mock" by default.
	Suffix string
	// IsolationAttribute marks doubles of isolated interfaces, "MainActor"
	// by default.
	IsolationAttribute string
	StdModule          string
}

func (o Options) withDefaults() Options {
	if o.Suffix == "" {
		o.Suffix = "Mock"
	}
	if o.IsolationAttribute == "" {
		o.IsolationAttribute = "MainActor"
	}
	return o
}

// Double is the assembled test double of one interface.
type Double struct {
	Interface string
	Class     *decl.Class
	Recorders []*synth.Recorder
}

// Builder assembles doubles. It is safe for concurrent use.
type Builder struct {
	opts Options
	syn  *synth.Synthesizer
}

func NewBuilder(opts Options) *Builder {
	opts = opts.withDefaults()
	return &Builder{opts: opts, syn: synth.New(synth.Options{StdModule: opts.StdModule})}
}

// BuildDouble is NewBuilder(opts).Build.
func BuildDouble(ctx context.Context, d *iface.Decl, opts Options) (*Double, error) {
	return NewBuilder(opts).Build(ctx, d)
}

// Build synthesizes every member of d and assembles the double class. Any
// failing member fails the whole declaration.
func (b *Builder) Build(ctx context.Context, d *iface.Decl) (*Double, error) {
	if d == nil {
		return nil, diag.Errorf(diag.SynthNotInterface, "cannot synthesize a double for nothing")
	}
	ctx, span := trace.Start(ctx, trace.ScopeInterface, "interface:"+d.Name)
	defer span.End("")

	if err := d.Validate(); err != nil {
		var verr *iface.ValidationError
		if errors.As(err, &verr) && len(verr.Issues) == 1 {
			return nil, verr.Issues[0]
		}
		return nil, err
	}

	names := recorderNames(d.Members)
	recs := make([]*synth.Recorder, 0, len(d.Members))
	hasInit := false
	for i, m := range d.Members {
		_, mspan := trace.Start(ctx, trace.ScopeMember, "member:"+d.Name+"."+m.MemberName())
		rec, err := b.syn.Named(d, m, names[i])
		if err != nil {
			mspan.End("failed")
			return nil, err
		}
		mspan.Describe(trace.MemberInfo{
			Owner:    d.Name,
			Member:   m.MemberName(),
			Recorder: rec.Name,
			Shape:    rec.Shape.String(),
			Erased:   rec.Erased,
			Cast:     rec.ReturnErased,
			Static:   rec.Static,
		}).End("")
		if _, ok := m.(*iface.Initializer); ok {
			hasInit = true
		}
		recs = append(recs, rec)
	}

	class := &decl.Class{
		Modifiers:  classModifiers(d.Access),
		Name:       d.Name + b.opts.Suffix,
		TypeParams: d.Associated,
		Conforms:   []typeexpr.Expr{typeexpr.Ident(d.Name)},
		Where:      d.Requirements,
	}
	if d.Isolated {
		class.Attributes = []string{b.opts.IsolationAttribute}
	}

	access := memberAccess(d.Access)
	if !hasInit {
		// the implicit initializer of a public class is internal
		class.Members = append(class.Members, &decl.Init{Modifiers: access})
	}
	var statics []*synth.Recorder
	for _, rec := range recs {
		class.Members = append(class.Members, rec.Decls()...)
		if rec.Static {
			statics = append(statics, rec)
		}
	}
	if len(statics) > 0 {
		reset := &decl.Func{
			Modifiers: append(decl.Modifiers{}, access...),
			Name:      ResetStaticName,
		}
		if d.Isolated {
			reset.Modifiers = append(reset.Modifiers, "nonisolated")
		}
		reset.Modifiers = append(reset.Modifiers, "static")
		for _, rec := range statics {
			reset.Body = append(reset.Body, synth.ResetStmt(rec))
		}
		class.Members = append(class.Members, reset)
	}

	span.WithExtra("members", strconv.Itoa(len(recs)))
	return &Double{Interface: d.Name, Class: class, Recorders: recs}, nil
}

func memberAccess(a iface.Access) decl.Modifiers {
	switch a {
	case iface.AccessPublic, iface.AccessOpen:
		return decl.Modifiers{"public"}
	case iface.AccessPackage:
		return decl.Modifiers{"package"}
	}
	return nil
}

func classModifiers(a iface.Access) decl.Modifiers {
	return append(memberAccess(a), "final")
}
