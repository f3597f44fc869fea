package trace

import (
	"strconv"
	"strings"
	"sync/atomic"
)

type scopeCounters struct {
	open, done atomic.Int64
}

// progress counts spans of every traced run in the process, filtered or not.
var progress progressCounters

type progressCounters [ScopeMember + 1]scopeCounters

func (p *progressCounters) begin(s Scope) {
	if int(s) < len(p) {
		p[s].open.Add(1)
	}
}

func (p *progressCounters) end(s Scope) {
	if int(s) < len(p) {
		p[s].open.Add(-1)
		p[s].done.Add(1)
	}
}

// Progress is a snapshot of span counts per scope.
type Progress struct {
	Open [ScopeMember + 1]int64
	Done [ScopeMember + 1]int64
}

// ReadProgress snapshots the process-wide counters.
func ReadProgress() Progress {
	var out Progress
	for s := 0; s < len(progress); s++ {
		out.Open[s] = progress[s].open.Load()
		out.Done[s] = progress[s].done.Load()
	}
	return out
}

// Since returns the counts accumulated after base. Open counts are kept
// as they are.
func (p Progress) Since(base Progress) Progress {
	out := p
	for s := range out.Done {
		out.Done[s] -= base.Done[s]
	}
	return out
}

// Extra renders the non-zero counters as "<scope>_open"/"<scope>_done".
func (p Progress) Extra() map[string]string {
	out := make(map[string]string)
	for s := ScopePass; s <= ScopeMember; s++ {
		if p.Open[s] != 0 {
			out[s.String()+"_open"] = strconv.FormatInt(p.Open[s], 10)
		}
		if p.Done[s] != 0 {
			out[s.String()+"_done"] = strconv.FormatInt(p.Done[s], 10)
		}
	}
	return out
}

// String: "pass 1 open 3 done, member 0 open 52 done". Driver spans and
// idle scopes are left out.
func (p Progress) String() string {
	var parts []string
	for s := ScopePass; s <= ScopeMember; s++ {
		if p.Open[s] == 0 && p.Done[s] == 0 {
			continue
		}
		parts = append(parts, s.String()+" "+strconv.FormatInt(p.Open[s], 10)+" open "+
			strconv.FormatInt(p.Done[s], 10)+" done")
	}
	if len(parts) == 0 {
		return "idle"
	}
	return strings.Join(parts, ", ")
}
