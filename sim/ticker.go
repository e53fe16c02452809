package sim

import (
	"sync"
)

// TickEvent is a generic event that almost all the component can use to
// update their status.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent
func MakeTickEvent(handler Handler, time VTime) TickEvent {
	evt := TickEvent{}
	evt.ID = GetIDGenerator().Generate()
	evt.handler = handler
	evt.time = time

	return evt
}

// A Ticker is an object that updates states with ticks. Tick returns false
// when the ticker has nothing more to do.
type Ticker interface {
	Tick(now VTime) bool
}

// TickScheduler can help schedule tick events. At most one tick is pending at
// any time.
type TickScheduler struct {
	lock    sync.Mutex
	handler Handler
	Engine  Engine

	nextTickTime VTime
	scheduled    bool
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(handler Handler, engine Engine) *TickScheduler {
	ticker := new(TickScheduler)

	ticker.handler = handler
	ticker.Engine = engine

	return ticker
}

// TickNow schedule a Tick event at the current time.
func (t *TickScheduler) TickNow() {
	t.scheduleAt(t.Engine.CurrentTime())
}

// TickLater will schedule a tick event at the next clock edge.
func (t *TickScheduler) TickLater() {
	t.scheduleAt(t.Engine.CurrentTime() + 1)
}

// TickAt schedules a tick event at the given time.
func (t *TickScheduler) TickAt(time VTime) {
	t.scheduleAt(time)
}

func (t *TickScheduler) scheduleAt(time VTime) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.scheduled && t.nextTickTime >= time {
		return
	}

	t.nextTickTime = time
	t.scheduled = true
	t.Engine.Schedule(MakeTickEvent(t.handler, time))
}

func (t *TickScheduler) ticked(now VTime) {
	t.lock.Lock()
	if t.nextTickTime <= now {
		t.scheduled = false
	}
	t.lock.Unlock()
}

// TickingComponent is a type of component that update states from edge to
// edge. A programmer would only need to program a tick function for a ticking
// component.
type TickingComponent struct {
	*ComponentBase
	*TickScheduler

	ticker Ticker
}

// Handle triggers the tick function of the TickingComponent
func (c *TickingComponent) Handle(e Event) error {
	now := e.Time()
	c.TickScheduler.ticked(now)

	madeProgress := c.ticker.Tick(now)
	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a new ticking component
func NewTickingComponent(
	name string,
	engine Engine,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.TickScheduler = NewTickScheduler(tc, engine)
	tc.ComponentBase = NewComponentBase(name)
	tc.ticker = ticker

	return tc
}
