package driver

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"mocksmith/internal/iface"
	"mocksmith/internal/synth"
)

// recorderNames picks a distinct recorder name per member. Members whose
// base name is shared get their capitalised argument labels appended
// (fetch(id:) -> fetchId); if that still collides, a numeric suffix follows.
// Initializers have no recorder and keep "init".
func recorderNames(members []iface.Member) []string {
	names := make([]string, len(members))
	count := make(map[string]int)
	for i, m := range members {
		names[i] = synth.RecorderBase(m)
		if _, ok := m.(*iface.Initializer); !ok {
			count[names[i]]++
		}
	}

	taken := make(map[string]bool)
	for i, m := range members {
		if _, ok := m.(*iface.Initializer); ok {
			continue
		}
		if count[names[i]] == 1 {
			taken[names[i]] = true
		}
	}

	for i, m := range members {
		if _, ok := m.(*iface.Initializer); ok || count[names[i]] == 1 {
			continue
		}
		candidate := names[i]
		if meth, ok := m.(*iface.Method); ok {
			candidate += labelSuffix(meth.Params)
		}
		name := candidate
		for n := 2; taken[name]; n++ {
			name = candidate + strconv.Itoa(n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func labelSuffix(params []iface.Param) string {
	var out string
	for _, p := range params {
		label := p.ExternalLabel()
		if label == "_" {
			continue
		}
		out += capitalize(label)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
