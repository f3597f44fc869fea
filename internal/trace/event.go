package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// MemberInfo is what the synthesizer decided for one member. It rides on
// the end event of a member span.
type MemberInfo struct {
	Owner    string `json:"owner"`
	Member   string `json:"member"`
	Recorder string `json:"recorder"` // after overload disambiguation
	Shape    string `json:"shape"`
	// Erased: a parameter or the result lost a method generic.
	Erased bool `json:"erased,omitempty"`
	Cast   bool `json:"cast,omitempty"` // the delegate casts its result back
	Static bool `json:"static,omitempty"`
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores the event
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // "generate", "file:store.mock.yaml", "interface:Store", "member:Store.fetch(id:)"
	Detail   string
	Member   *MemberInfo
	Extra    map[string]string
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !wants(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}

// wants reports whether t keeps events of scope. Ring tracers at error level
// keep every scope.
func wants(t Tracer, scope Scope) bool {
	if t == nil || !t.Enabled() {
		return false
	}
	return t.Level() == LevelError || t.Level().ShouldEmit(scope)
}
