package sim

import (
	"log"
	"sync"
)

// A SerialEngine triggers events one at a time, in virtual-time order.
type SerialEngine struct {
	HookableBase

	nowLock sync.RWMutex
	now     VTimeInSec

	primary   EventQueue
	secondary EventQueue

	paused     bool
	pausedLock sync.Mutex
	gate       sync.Mutex

	runLock sync.Mutex

	endHandlers []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		primary:   NewEventQueue(),
		secondary: NewEventQueue(),
	}
}

// Schedule registers an event to happen in the future.
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Time() < e.CurrentTime() {
		log.Panic("scheduling an event earlier than current time")
	}

	if evt.IsSecondary() {
		e.secondary.Push(evt)
		return
	}

	e.primary.Push(evt)
}

// Run triggers all the scheduled events, including the ones scheduled while
// running, until both queues drain.
func (e *SerialEngine) Run() error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	for e.step() {
	}

	return nil
}

// step triggers the next event. It returns false when no event is left.
func (e *SerialEngine) step() bool {
	if e.primary.Len() == 0 && e.secondary.Len() == 0 {
		return false
	}

	e.gate.Lock()
	defer e.gate.Unlock()

	evt := e.pop()
	e.advanceTo(evt.Time())

	ctx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(ctx)

	_ = evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	return true
}

// pop removes and returns the event to trigger next. A secondary event
// yields to primary events scheduled at the same time.
func (e *SerialEngine) pop() Event {
	switch {
	case e.primary.Len() == 0:
		return e.secondary.Pop()
	case e.secondary.Len() == 0:
		return e.primary.Pop()
	case e.primary.Peek().Time() <= e.secondary.Peek().Time():
		return e.primary.Pop()
	default:
		return e.secondary.Pop()
	}
}

func (e *SerialEngine) advanceTo(t VTimeInSec) {
	now := e.CurrentTime()
	if t < now {
		log.Panicf(
			"cannot trigger an event in the past, evt @ %.10f, now %.10f",
			t, now,
		)
	}

	e.nowLock.Lock()
	e.now = t
	e.nowLock.Unlock()
}

// Pause stops the SerialEngine from triggering more events. The event being
// triggered at the moment of the call still completes.
func (e *SerialEngine) Pause() {
	e.pausedLock.Lock()
	defer e.pausedLock.Unlock()

	if e.paused {
		return
	}

	e.gate.Lock()
	e.paused = true
}

// Continue lets a paused SerialEngine trigger events again.
func (e *SerialEngine) Continue() {
	e.pausedLock.Lock()
	defer e.pausedLock.Unlock()

	if !e.paused {
		return
	}

	e.gate.Unlock()
	e.paused = false
}

// CurrentTime returns the time of the event currently being triggered.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.nowLock.RLock()
	defer e.nowLock.RUnlock()

	return e.now
}

// RegisterSimulationEndHandler registers a handler to be called after the
// simulation ends.
func (e *SerialEngine) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	e.endHandlers = append(e.endHandlers, handler)
}

// Finished calls all the registered SimulationEndHandlers. It should be
// called once, after the simulation completes.
func (e *SerialEngine) Finished() {
	now := e.CurrentTime()
	for _, h := range e.endHandlers {
		h.Handle(now)
	}
}
