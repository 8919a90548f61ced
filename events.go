package main

// Event names emitted by the viewer
const (
	EventPageChanged = "pageChanged" // payload: new current page
	EventRenderReady = "renderReady" // no payload
)

// EventHandler receives the payload of an event; renderReady passes 0
type EventHandler func(page int)

// EventEmitter dispatches named events to explicitly registered subscribers.
// Handlers run synchronously in registration order.
type EventEmitter struct {
	handlers map[string][]EventHandler
}

// NewEventEmitter creates an emitter with no subscribers
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{handlers: make(map[string][]EventHandler)}
}

// On subscribes a handler to an event
func (e *EventEmitter) On(event string, handler EventHandler) {
	e.handlers[event] = append(e.handlers[event], handler)
}

// OnPageChanged subscribes to pageChanged
func (e *EventEmitter) OnPageChanged(handler func(page int)) {
	e.On(EventPageChanged, handler)
}

// OnRenderReady subscribes to renderReady
func (e *EventEmitter) OnRenderReady(handler func()) {
	e.On(EventRenderReady, func(int) { handler() })
}

// Emit calls every subscriber of the event
func (e *EventEmitter) Emit(event string, page int) {
	for _, handler := range e.handlers[event] {
		handler(page)
	}
}
