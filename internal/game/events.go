package game

type EventType int

const (
	EventJudged EventType = iota
	EventPassiveMiss
	EventGameOver
)

// Event carries a judged result or a passive miss. Points are pre-multiplier.
type Event struct {
	Type    EventType
	Quality Quality
	Points  int
	Time    float64 // audio-clock seconds of the input, zero for passive
}

type EventHandler func(Event)

// EventBus is a main-thread observer registry. Subscribe returns an id so a
// session can unsubscribe on teardown; restarts never double-register.
type EventBus struct {
	handlers map[EventType]map[int]EventHandler
	nextID   int
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType]map[int]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) int {
	eb.nextID++
	if eb.handlers[t] == nil {
		eb.handlers[t] = make(map[int]EventHandler)
	}
	eb.handlers[t][eb.nextID] = fn
	return eb.nextID
}

func (eb *EventBus) Unsubscribe(t EventType, id int) {
	delete(eb.handlers[t], id)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
