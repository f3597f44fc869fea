package synth

import (
	"mocksmith/internal/decl"
	"mocksmith/internal/iface"
)

// initializer passes the requirement through with an empty body; a double
// never runs construction logic.
func (s *Synthesizer) initializer(owner *iface.Decl, m *iface.Initializer) (*Recorder, error) {
	if err := validateParams(m.Params); err != nil {
		return nil, err
	}
	params := make([]decl.Param, len(m.Params))
	for i, p := range m.Params {
		params[i] = delegateParam(p)
	}
	return &Recorder{
		Name:    "init",
		Display: display(owner, m),
		Delegate: &decl.Init{
			Modifiers: modifiers(memberAccess(owner)),
			Params:    params,
			Async:     m.Async,
			Throws:    m.Throws,
		},
	}, nil
}
