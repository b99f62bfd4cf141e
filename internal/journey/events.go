package journey

import (
	"errors"
	"fmt"
	"time"
)

// EventKind identifies what happened in the engine.
type EventKind string

const (
	EventStepAdvanced       EventKind = "step_advanced"
	EventSceneChanged       EventKind = "scene_changed"
	EventSceneCompleted     EventKind = "scene_completed"
	EventTransitionRejected EventKind = "transition_rejected"
	EventAudioChanged       EventKind = "audio_changed"
)

// Reason explains why a transition was refused.
type Reason string

const (
	ReasonLocked     Reason = "locked"
	ReasonBoundary   Reason = "boundary"
	ReasonNotMounted Reason = "not_mounted"
)

// Tier names which controller an event or rejection belongs to.
type Tier string

const (
	TierStep  Tier = "step"
	TierScene Tier = "scene"
)

// Direction of a transition.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Event describes a single state change or refused transition.
//
// Fields that do not apply to a kind are left at their zero value.
type Event struct {
	Kind  EventKind
	Tier  Tier
	Step  Step
	From  Scene
	To    Scene
	Scene Scene
	// Index is the position of To in the sequence for scene_changed.
	Index     int
	Direction Direction
	Reason    Reason
	Audio     bool
	At        time.Time
}

// Observer receives engine events. Observers run synchronously on the
// goroutine that mutated the engine; they may read state but must not
// mutate it.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Sentinel errors returned by the Try* transition methods.
var (
	ErrSceneLocked = errors.New("scene is locked until completed")
	ErrAtBoundary  = errors.New("already at the end of the sequence")
	ErrNotMounted  = errors.New("scene sequence is not mounted yet")
)

// RejectedError reports a refused transition. The engine state is
// unchanged whenever one is returned.
type RejectedError struct {
	Tier      Tier
	Direction Direction
	Step      Step
	Scene     Scene
	Reason    Reason
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s transition rejected at %s: %v", e.Direction, e.subject(), e.Unwrap())
}

func (e *RejectedError) subject() string {
	if e.Tier == TierStep {
		return e.Step.String()
	}
	return e.Scene.String()
}

// Unwrap maps the reason to its sentinel error.
func (e *RejectedError) Unwrap() error {
	switch e.Reason {
	case ReasonLocked:
		return ErrSceneLocked
	case ReasonNotMounted:
		return ErrNotMounted
	default:
		return ErrAtBoundary
	}
}
