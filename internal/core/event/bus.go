package event

import "reflect"

// Bus is a double-buffered event bus. Events emitted during tick N are
// delivered when the dispatch system runs at the start of tick N+1, in the
// order they were emitted.
// Single-goroutine access only (game loop).
type Bus struct {
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(any))}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, ev T) {
	b.back = append(b.back, ev)
}

// Subscribe registers a handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers moves the back buffer to the front and starts a fresh back
// buffer. Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers the front buffer to subscribers and returns the
// number of events delivered. Handlers may Emit; those events land in the
// back buffer for the next tick.
func (b *Bus) DispatchAll() int {
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			h(ev)
		}
	}
	n := len(b.front)
	b.front = b.front[:0]
	return n
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int { return len(b.back) }
