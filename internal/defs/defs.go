// Package defs loads interface definition files (YAML) into iface.Decl
// values. Signatures inside the file use the notation read by typeparse.
package defs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mocksmith/internal/diag"
	"mocksmith/internal/iface"
	"mocksmith/internal/typeexpr"
	"mocksmith/internal/typeparse"
)

type fileDoc struct {
	Interfaces []interfaceDoc `yaml:"interfaces"`
}

type interfaceDoc struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"`
	Access     string          `yaml:"access"`
	Isolated   bool            `yaml:"isolated"`
	Associated []associatedDoc `yaml:"associated"`
	Where      []string        `yaml:"where"`
	Members    []memberDoc     `yaml:"members"`
}

type associatedDoc struct {
	Name     string `yaml:"name"`
	Inherits string `yaml:"inherits"`
}

// memberDoc carries exactly one of Init, Property or Method.
type memberDoc struct {
	Init     *string   `yaml:"init"`
	Property *string   `yaml:"property"`
	Method   *string   `yaml:"method"`
	Get      []string  `yaml:"get"`
	Set      setterDoc `yaml:"set"`
}

// setterDoc accepts `set: true` or `set: [mutating]`.
type setterDoc struct {
	Present  bool
	Mutating bool
}

func (s *setterDoc) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var on bool
		if err := n.Decode(&on); err != nil {
			return fmt.Errorf("line %d: set must be a boolean or a list of effects", n.Line)
		}
		s.Present = on
		return nil
	case yaml.SequenceNode:
		var effects []string
		if err := n.Decode(&effects); err != nil {
			return err
		}
		s.Present = true
		for _, e := range effects {
			switch e {
			case "mutating":
				s.Mutating = true
			case "nonmutating":
			default:
				return fmt.Errorf("line %d: unknown setter effect %q (expected mutating|nonmutating)", n.Line, e)
			}
		}
		return nil
	}
	return fmt.Errorf("line %d: set must be a boolean or a list of effects", n.Line)
}

// Load reads and parses one definition file. Problems are reported to bag;
// declarations with problems are left out of the result.
func Load(path string, bag *diag.Bag) []*iface.Decl {
	data, err := os.ReadFile(path)
	if err != nil {
		bag.Add(diag.NewError(diag.IOReadFailure, fmt.Sprintf("read definitions: %v", err)).InFile(path))
		return nil
	}
	return Parse(path, data, bag)
}

// Parse decodes definition file contents.
func Parse(path string, data []byte, bag *diag.Bag) []*iface.Decl {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc fileDoc
	if err := dec.Decode(&doc); err != nil {
		msg := fmt.Sprintf("parse definitions: %v", err)
		if errors.Is(err, io.EOF) {
			msg = "definition file is empty"
		}
		bag.Add(diag.NewError(diag.DefInvalidFile, msg).InFile(path))
		return nil
	}

	var out []*iface.Decl
	seen := make(map[string]bool, len(doc.Interfaces))
	for i := range doc.Interfaces {
		raw := &doc.Interfaces[i]
		if raw.Name != "" && seen[raw.Name] {
			bag.Add(diag.NewError(diag.DefDuplicateInterface,
				fmt.Sprintf("interface %q is defined more than once", raw.Name)).InFile(path))
			continue
		}
		seen[raw.Name] = true

		l := loader{path: path, owner: raw.Name}
		d := l.decl(i, raw)
		if len(l.errs) > 0 {
			for _, e := range l.errs {
				bag.AddError(path, e)
			}
			continue
		}
		if err := d.Validate(); err != nil {
			var verr *iface.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					bag.AddError(path, issue)
				}
			} else {
				bag.AddError(path, err)
			}
			continue
		}
		out = append(out, d)
	}
	return out
}

// loader collects every problem of one interface instead of stopping at the
// first.
type loader struct {
	path  string
	owner string
	errs  []*diag.Error
}

func (l *loader) fail(err error, member string) {
	var de *diag.Error
	if !errors.As(err, &de) {
		de = diag.Errorf(diag.UnknownCode, "%v", err)
	}
	de.Diag.File = l.path
	l.errs = append(l.errs, de.WithSubject(l.owner, member))
}

func (l *loader) failf(code diag.Code, member, format string, args ...any) {
	l.fail(diag.Errorf(code, format, args...), member)
}

func (l *loader) decl(index int, raw *interfaceDoc) *iface.Decl {
	d := &iface.Decl{Name: raw.Name, Isolated: raw.Isolated}
	if raw.Name == "" {
		l.owner = fmt.Sprintf("interfaces[%d]", index)
		l.failf(diag.DefMissingName, "", "interface has no name")
	}
	var err error
	if d.Kind, err = iface.ParseDeclKind(raw.Kind); err != nil {
		l.failf(diag.DefUnknownDeclKind, "", "%v", err)
	}
	if d.Access, err = iface.ParseAccess(raw.Access); err != nil {
		l.failf(diag.DefUnknownAccess, "", "%v", err)
	}

	for _, a := range raw.Associated {
		gp := typeexpr.GenericParam{Name: strings.TrimSpace(a.Name)}
		if a.Inherits != "" {
			t, err := typeparse.ParseType(a.Inherits)
			if err != nil {
				l.fail(err, gp.Name)
				continue
			}
			gp.Inherited = t
		}
		d.Associated = append(d.Associated, gp)
	}
	for _, w := range raw.Where {
		r, err := typeparse.ParseRequirement(w)
		if err != nil {
			l.fail(err, "")
			continue
		}
		d.Requirements = append(d.Requirements, r)
	}
	for i := range raw.Members {
		if m := l.member(i, &raw.Members[i]); m != nil {
			d.Members = append(d.Members, m)
		}
	}
	return d
}

func (l *loader) member(index int, raw *memberDoc) iface.Member {
	label := fmt.Sprintf("members[%d]", index)
	kinds := 0
	for _, p := range []*string{raw.Init, raw.Property, raw.Method} {
		if p != nil {
			kinds++
		}
	}
	switch {
	case kinds == 0:
		l.failf(diag.DefUnknownMemberKind, label, "member must be one of init, property or method")
		return nil
	case kinds > 1:
		l.failf(diag.DefAmbiguousMember, label, "member declares more than one of init, property and method")
		return nil
	}
	if raw.Property == nil && (raw.Get != nil || raw.Set.Present) {
		l.failf(diag.DefUnknownEffect, label, "get/set only apply to properties")
		return nil
	}

	switch {
	case raw.Init != nil:
		init, err := typeparse.ParseInitializer(*raw.Init)
		if err != nil {
			l.fail(err, label)
			return nil
		}
		return init
	case raw.Method != nil:
		m, err := typeparse.ParseMethod(*raw.Method)
		if err != nil {
			l.fail(err, label)
			return nil
		}
		return m
	}

	p, err := typeparse.ParseProperty(*raw.Property)
	if err != nil {
		l.fail(err, label)
		return nil
	}
	for _, e := range raw.Get {
		switch strings.TrimSpace(e) {
		case "async":
			p.Effects.Async = true
		case "throws":
			p.Effects.Throws = true
		case "mutating":
			p.Effects.MutatingGet = true
		case "nonmutating":
		default:
			l.failf(diag.DefUnknownEffect, p.Name, "unknown getter effect %q (expected async|throws|mutating|nonmutating)", e)
			return nil
		}
	}
	p.Settable = raw.Set.Present
	p.Effects.MutatingSet = raw.Set.Mutating
	return p
}
