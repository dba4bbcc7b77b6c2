package camera

import (
	"fmt"

	"github.com/Faultbox/geoheat/pkg/math"
)

// EventKind identifies the operation that moved the camera.
type EventKind int

const (
	EventPan EventKind = iota
	EventZoom
	EventRotate
)

// String returns the lowercase event name.
func (k EventKind) String() string {
	switch k {
	case EventPan:
		return "pan"
	case EventZoom:
		return "zoom"
	case EventRotate:
		return "rotate"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to listeners after every camera mutation.
type Event struct {
	Kind     EventKind
	Position math.Vec3
	Origin   math.Vec3
}

// Listener receives camera events.
type Listener func(Event)

type listener struct {
	id int
	fn Listener
}

// Subscribe registers fn for every pan, zoom and rotate. Listeners run in
// subscription order. The returned func removes the subscription.
//
// A listener may call back into the controller; the resulting event is
// queued and delivered after the current one instead of recursing.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) emit(kind EventKind, pos math.Vec3) {
	c.pending = append(c.pending, Event{Kind: kind, Position: pos, Origin: c.origin})
	if c.dispatching {
		return
	}

	c.dispatching = true
	defer func() { c.dispatching = false }()

	for len(c.pending) > 0 {
		ev := c.pending[0]
		c.pending = c.pending[1:]

		snapshot := append([]listener(nil), c.listeners...)
		for _, l := range snapshot {
			l.fn(ev)
		}
	}
}
