package journey

import (
	"errors"
	"fmt"
	"time"
)

// Sequence is the scene navigator. Forward moves are refused while the
// current scene is interactive and not yet completed; backward moves are
// only bounded by the first scene.
type Sequence struct {
	scenes      []Scene
	interactive map[Scene]struct{}
	tracker     *Tracker
	index       int
	observer    Observer
	now         func() time.Time
}

// NewSequence builds a sequence over scenes, positioned at the first one.
// Every interactive scene must appear in scenes.
func NewSequence(scenes, interactive []Scene, tracker *Tracker, observer Observer) (*Sequence, error) {
	if len(scenes) == 0 {
		return nil, errors.New("sequence needs at least one scene")
	}
	if tracker == nil {
		return nil, errors.New("tracker cannot be nil")
	}

	seen := make(map[Scene]struct{}, len(scenes))
	for _, s := range scenes {
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("scene %s listed twice", s)
		}
		seen[s] = struct{}{}
	}

	set := make(map[Scene]struct{}, len(interactive))
	for _, s := range interactive {
		if _, ok := seen[s]; !ok {
			return nil, fmt.Errorf("interactive scene %s is not in the sequence", s)
		}
		set[s] = struct{}{}
	}

	if observer == nil {
		observer = nopObserver{}
	}

	return &Sequence{
		scenes:      append([]Scene(nil), scenes...),
		interactive: set,
		tracker:     tracker,
		observer:    observer,
		now:         time.Now,
	}, nil
}

// Len returns the number of scenes.
func (q *Sequence) Len() int { return len(q.scenes) }

// Index returns the position of the current scene.
func (q *Sequence) Index() int { return q.index }

// Current returns the current scene.
func (q *Sequence) Current() Scene { return q.scenes[q.index] }

// Scenes returns a copy of the scene order.
func (q *Sequence) Scenes() []Scene { return append([]Scene(nil), q.scenes...) }

// IsInteractive reports whether scene needs a completion signal.
func (q *Sequence) IsInteractive(scene Scene) bool {
	_, ok := q.interactive[scene]
	return ok
}

// IsLocked reports whether forward exit from scene is blocked.
func (q *Sequence) IsLocked(scene Scene) bool {
	return q.IsInteractive(scene) && !q.tracker.Contains(scene)
}

// CanAdvance reports whether the current scene is unlocked.
func (q *Sequence) CanAdvance() bool { return !q.IsLocked(q.Current()) }

// CanRetreat reports whether there is a scene before the current one.
func (q *Sequence) CanRetreat() bool { return q.index > 0 }

// AtEnd reports whether the current scene is the last one.
func (q *Sequence) AtEnd() bool { return q.index == len(q.scenes)-1 }

// Next moves forward one scene unless the current scene is locked or last.
func (q *Sequence) Next() { _ = q.TryNext() }

// Previous moves back one scene unless already at the first.
func (q *Sequence) Previous() { _ = q.TryPrevious() }

// TryNext is Next with the refusal reported as a *RejectedError.
// The lock check wins over the boundary check.
func (q *Sequence) TryNext() error {
	switch {
	case !q.CanAdvance():
		return q.reject(Forward, ReasonLocked)
	case q.AtEnd():
		return q.reject(Forward, ReasonBoundary)
	}
	q.move(Forward, q.index+1)
	return nil
}

// TryPrevious is Previous with the refusal reported as a *RejectedError.
func (q *Sequence) TryPrevious() error {
	if !q.CanRetreat() {
		return q.reject(Backward, ReasonBoundary)
	}
	q.move(Backward, q.index-1)
	return nil
}

// MarkComplete records scene as completed, unlocking it. Repeated calls
// after the first change nothing and emit no event.
func (q *Sequence) MarkComplete(scene Scene) {
	if !q.tracker.Add(scene) {
		return
	}
	q.observer.Observe(Event{
		Kind:  EventSceneCompleted,
		Tier:  TierScene,
		Scene: scene,
		At:    q.now(),
	})
}

func (q *Sequence) move(dir Direction, to int) {
	from := q.Current()
	q.index = to
	q.observer.Observe(Event{
		Kind:      EventSceneChanged,
		Tier:      TierScene,
		From:      from,
		To:        q.Current(),
		Scene:     q.Current(),
		Index:     to,
		Direction: dir,
		At:        q.now(),
	})
}

func (q *Sequence) reject(dir Direction, reason Reason) error {
	err := &RejectedError{Tier: TierScene, Direction: dir, Scene: q.Current(), Reason: reason}
	q.observer.Observe(Event{
		Kind:      EventTransitionRejected,
		Tier:      TierScene,
		Scene:     err.Scene,
		Direction: dir,
		Reason:    reason,
		At:        q.now(),
	})
	return err
}
