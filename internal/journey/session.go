package journey

import (
	"time"

	"github.com/google/uuid"
)

// Session owns the whole engine state for one user session: the journey
// step, the scene sequence, completed scenes and the ambient audio flag.
// It is not safe for concurrent use; drive it from a single event loop.
type Session struct {
	id       string
	steps    *Steps
	sequence *Sequence
	tracker  *Tracker
	audio    *Toggle
	dispatch dispatcher
	autoplay bool
	now      func() time.Time
}

type sessionOptions struct {
	id          string
	observers   []Observer
	scenes      []Scene
	interactive []Scene
	autoplay    bool
	now         func() time.Time
}

// Option configures a Session.
type Option func(*sessionOptions)

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(o *sessionOptions) { o.id = id }
}

// WithObserver subscribes o to every engine event.
func WithObserver(o Observer) Option {
	return func(opts *sessionOptions) { opts.observers = append(opts.observers, o) }
}

// WithScenes replaces the default scene order and interactive set.
func WithScenes(scenes, interactive []Scene) Option {
	return func(o *sessionOptions) {
		o.scenes = scenes
		o.interactive = interactive
	}
}

// WithAutoplayOnUnlock controls whether completing StepUnlock switches
// ambient audio on. Enabled by default.
func WithAutoplayOnUnlock(enabled bool) Option {
	return func(o *sessionOptions) { o.autoplay = enabled }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) { o.now = now }
}

// NewSession starts a session at StepUnlock / the first scene with no
// completed scenes and audio off.
func NewSession(opts ...Option) (*Session, error) {
	o := sessionOptions{
		scenes:      DefaultScenes(),
		interactive: DefaultInteractive(),
		autoplay:    true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.New().String()
	}

	s := &Session{
		id:       o.id,
		tracker:  NewTracker(),
		autoplay: o.autoplay,
		now:      o.now,
	}
	s.dispatch.list = append(s.dispatch.list, o.observers...)

	seq, err := NewSequence(o.scenes, o.interactive, s.tracker, &s.dispatch)
	if err != nil {
		return nil, err
	}
	seq.now = o.now
	s.sequence = seq

	s.steps = NewSteps(&s.dispatch)
	s.steps.now = o.now
	s.audio = NewToggle(&s.dispatch)
	s.audio.now = o.now

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Subscribe adds an observer for all subsequent events.
func (s *Session) Subscribe(o Observer) {
	if o != nil {
		s.dispatch.list = append(s.dispatch.list, o)
	}
}

// Step returns the current journey step.
func (s *Session) Step() Step { return s.steps.Current() }

// Steps returns the step controller.
func (s *Session) Steps() *Steps { return s.steps }

// Mounted reports whether the scene sequence is active, which happens once
// the journey reaches StepFinal.
func (s *Session) Mounted() bool { return s.steps.IsTerminal() }

// Sequence returns the scene controller, or nil before StepFinal.
func (s *Session) Sequence() *Sequence {
	if !s.Mounted() {
		return nil
	}
	return s.sequence
}

// Scenes returns the scene order, which is fixed for the session.
func (s *Session) Scenes() []Scene { return s.sequence.Scenes() }

// Tracker returns the completed-scene set.
func (s *Session) Tracker() *Tracker { return s.tracker }

// Audio returns the shared ambient audio flag.
func (s *Session) Audio() Switch { return s.audio }

// StepDone returns the completion callback for the collaborator of step.
// The callback advances the journey only while step is still current, so
// a late call from a collaborator that is no longer shown changes nothing.
func (s *Session) StepDone(step Step) func() {
	return func() {
		if s.steps.Current() != step {
			return
		}
		if err := s.steps.TryAdvance(); err != nil {
			return
		}
		if step == StepUnlock && s.autoplay {
			s.audio.Set(true)
		}
	}
}

// SceneDone returns the completion callback for the collaborator of scene.
func (s *Session) SceneDone(scene Scene) func() {
	return func() { s.sequence.MarkComplete(scene) }
}

// NextScene moves the story forward; see Sequence.Next.
func (s *Session) NextScene() error {
	if !s.Mounted() {
		return s.notMounted(Forward)
	}
	return s.sequence.TryNext()
}

// PrevScene moves the story back; see Sequence.Previous.
func (s *Session) PrevScene() error {
	if !s.Mounted() {
		return s.notMounted(Backward)
	}
	return s.sequence.TryPrevious()
}

func (s *Session) notMounted(dir Direction) error {
	err := &RejectedError{Tier: TierStep, Direction: dir, Step: s.Step(), Reason: ReasonNotMounted}
	s.dispatch.Observe(Event{
		Kind:      EventTransitionRejected,
		Tier:      TierStep,
		Step:      err.Step,
		Direction: dir,
		Reason:    ReasonNotMounted,
		At:        s.now(),
	})
	return err
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	SessionID  string  `json:"session_id"`
	Step       Step    `json:"step"`
	Mounted    bool    `json:"mounted"`
	Scene      Scene   `json:"scene"`
	SceneIndex int     `json:"scene_index"`
	SceneCount int     `json:"scene_count"`
	Completed  []Scene `json:"completed"`
	Locked     bool    `json:"locked"`
	CanAdvance bool    `json:"can_advance"`
	CanRetreat bool    `json:"can_retreat"`
	Audio      bool    `json:"audio"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	q := s.sequence
	return Snapshot{
		SessionID:  s.id,
		Step:       s.Step(),
		Mounted:    s.Mounted(),
		Scene:      q.Current(),
		SceneIndex: q.Index(),
		SceneCount: q.Len(),
		Completed:  s.tracker.Scenes(),
		Locked:     q.IsLocked(q.Current()),
		CanAdvance: s.Mounted() && q.CanAdvance() && !q.AtEnd(),
		CanRetreat: s.Mounted() && q.CanRetreat(),
		Audio:      s.audio.Get(),
	}
}

// dispatcher fans events out to a list that can grow after construction.
type dispatcher struct {
	list []Observer
}

func (d *dispatcher) Observe(e Event) {
	for _, o := range d.list {
		o.Observe(e)
	}
}
