package journey

import "time"

// Steps tracks the current journey step. It only moves forward.
type Steps struct {
	index    int
	observer Observer
	now      func() time.Time
}

// NewSteps returns a controller positioned at StepUnlock.
func NewSteps(observer Observer) *Steps {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Steps{observer: observer, now: time.Now}
}

// Current returns the active step.
func (s *Steps) Current() Step {
	return Step(s.index)
}

// IsTerminal reports whether the journey has reached StepFinal.
func (s *Steps) IsTerminal() bool {
	return s.index == len(stepNames)-1
}

// Advance moves to the next step. At StepFinal it does nothing.
func (s *Steps) Advance() {
	_ = s.TryAdvance()
}

// TryAdvance moves to the next step, or returns a *RejectedError wrapping
// ErrAtBoundary when already at StepFinal.
func (s *Steps) TryAdvance() error {
	if s.IsTerminal() {
		err := &RejectedError{Tier: TierStep, Direction: Forward, Step: s.Current(), Reason: ReasonBoundary}
		s.reject(err)
		return err
	}
	s.index++
	s.observer.Observe(Event{
		Kind:      EventStepAdvanced,
		Tier:      TierStep,
		Step:      s.Current(),
		Direction: Forward,
		At:        s.now(),
	})
	return nil
}

func (s *Steps) reject(err *RejectedError) {
	s.observer.Observe(Event{
		Kind:      EventTransitionRejected,
		Tier:      err.Tier,
		Step:      err.Step,
		Scene:     err.Scene,
		Direction: err.Direction,
		Reason:    err.Reason,
		At:        s.now(),
	})
}
