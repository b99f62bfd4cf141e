package journey

import "slices"

// Tracker is the set of scenes completed during a session. It only grows.
type Tracker struct {
	done map[Scene]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{done: make(map[Scene]struct{})}
}

// Contains reports whether scene has been completed.
func (t *Tracker) Contains(scene Scene) bool {
	_, ok := t.done[scene]
	return ok
}

// Add records scene as completed. Adding a scene twice is a no-op.
// It reports whether the scene was newly added.
func (t *Tracker) Add(scene Scene) bool {
	if t.Contains(scene) {
		return false
	}
	t.done[scene] = struct{}{}
	return true
}

// Len returns the number of completed scenes.
func (t *Tracker) Len() int {
	return len(t.done)
}

// Scenes returns the completed scenes in story order.
func (t *Tracker) Scenes() []Scene {
	out := make([]Scene, 0, len(t.done))
	for s := range t.done {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
