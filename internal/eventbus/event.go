package eventbus

import "time"

// Event is a to-do lifecycle notification published to the bus.
type Event struct {
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload"`
}

// Listener is a function that handles an event.
type Listener func(Event)

// Only wraps l so it is called for events of the given types only.
func Only(l Listener, types ...string) Listener {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(e Event) {
		if _, ok := set[e.Type]; ok {
			l(e)
		}
	}
}
