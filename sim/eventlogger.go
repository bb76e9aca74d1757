package sim

import (
	"log"
	"reflect"
)

// EventLogger is a hook that prints the event information before each event
// is handled.
type EventLogger struct {
	*log.Logger
}

// NewEventLogger returns a new EventLogger that writes into the given logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.Logger = logger

	return h
}

// Func writes a log line when an event is about to happen.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	comp, isComp := evt.Handler().(Component)
	if isComp {
		h.Printf("%.10f, %s -> %s",
			evt.Time(), reflect.TypeOf(evt), comp.Name())
		return
	}

	h.Printf("%.10f, %s", evt.Time(), reflect.TypeOf(evt))
}
