package equivalence

// EventKind classifies search events.
type EventKind int

const (
	// EventBranch marks a tentative placement of an F-triple onto a G-triple
	// in one of the six configurations.
	EventBranch EventKind = iota
	// EventContradiction marks a placement rejected by propagation.
	EventContradiction
	// EventEquivalent marks a successful search.
	EventEquivalent
	// EventExhausted marks a search that ran out of candidates.
	EventExhausted
)

func (k EventKind) String() string {
	switch k {
	case EventBranch:
		return "branch"
	case EventContradiction:
		return "contradiction"
	case EventEquivalent:
		return "equivalent"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Event is a structured search trace record. Tracers only observe; nothing
// they do feeds back into the search.
type Event struct {
	Kind    EventKind
	Depth   int
	FTriple int
	GTriple int
	Config  int
	Nodes   uint64
}

// Tracer receives search events synchronously.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(Event)

// Trace calls fn(ev).
func (fn TracerFunc) Trace(ev Event) {
	fn(ev)
}

// MultiTracer fans events out to several tracers.
type MultiTracer []Tracer

// Trace forwards ev to every tracer.
func (m MultiTracer) Trace(ev Event) {
	for _, t := range m {
		if t != nil {
			t.Trace(ev)
		}
	}
}
