package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Side    Side     // side that caused the event
	Pos     Position // where it happened
	Amount  int      // damage dealt, if any
	Payload interface{}
}

type EventType uint16

const (
	EvtMatchStart EventType = iota
	EvtUnitSpawned
	EvtUnitAttack
	EvtTowerAttack
	EvtUnitKilled
	EvtTowerDestroyed
	EvtMatchEnd
)

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch. A nil bus drops the event.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	pending := eb.queue
	eb.queue = nil
	for _, e := range pending {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
}

// Drop discards queued events without dispatching them
func (eb *EventBus) Drop() {
	eb.queue = eb.queue[:0]
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}
