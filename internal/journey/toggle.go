package journey

import "time"

// Switch is the view of the ambient audio flag handed to UI surfaces.
// Surfaces read it on every render instead of caching the value.
type Switch interface {
	Get() bool
	Toggle()
	Set(on bool)
}

// Toggle is the single ambient audio flag of a session.
type Toggle struct {
	on       bool
	observer Observer
	now      func() time.Time
}

var _ Switch = (*Toggle)(nil)

// NewToggle returns a flag that starts off.
func NewToggle(observer Observer) *Toggle {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Toggle{observer: observer, now: time.Now}
}

// Get returns the current value.
func (t *Toggle) Get() bool { return t.on }

// Toggle flips the value.
func (t *Toggle) Toggle() { t.Set(!t.on) }

// Set stores on. Setting the value it already has emits no event.
func (t *Toggle) Set(on bool) {
	if t.on == on {
		return
	}
	t.on = on
	t.observer.Observe(Event{Kind: EventAudioChanged, Audio: on, At: t.now()})
}
