package equivalence

import (
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/logger"
)

var l = logger.DefaultLogger.NewFacility("engine", "Linear equivalence search")

// LogTracer returns a Tracer that writes events to the "engine" debug
// facility. It is silent unless that facility is enabled.
func LogTracer() Tracer {
	return TracerFunc(func(ev Event) {
		if !l.ShouldDebug("engine") {
			return
		}
		switch ev.Kind {
		case EventBranch, EventContradiction:
			l.Debugf("%s depth=%d f=%d g=%d config=%d nodes=%d", ev.Kind, ev.Depth, ev.FTriple, ev.GTriple, ev.Config, ev.Nodes)
		default:
			l.Debugf("%s after %d nodes", ev.Kind, ev.Nodes)
		}
	})
}
