package journey

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) Observe(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func newDefaultSequence(t *testing.T, obs Observer) *Sequence {
	t.Helper()
	seq, err := NewSequence(DefaultScenes(), DefaultInteractive(), NewTracker(), obs)
	require.NoError(t, err)
	return seq
}

func TestSequence_GardenQuizMap(t *testing.T) {
	seq, err := NewSequence(
		[]Scene{SceneGarden, SceneQuiz, SceneMap},
		[]Scene{SceneQuiz},
		NewTracker(),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, SceneGarden, seq.Current())

	seq.Next()
	assert.Equal(t, SceneQuiz, seq.Current())

	seq.Next()
	assert.Equal(t, SceneQuiz, seq.Current(), "locked quiz must hold")

	seq.MarkComplete(SceneQuiz)
	seq.Next()
	assert.Equal(t, SceneMap, seq.Current())
}

func TestSequence_PreviousAtFirstScene(t *testing.T) {
	seq := newDefaultSequence(t, nil)
	seq.Previous()
	assert.Equal(t, 0, seq.Index())

	err := seq.TryPrevious()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAtBoundary))
	assert.Equal(t, 0, seq.Index())
}

func TestSequence_NextAtLastScene(t *testing.T) {
	seq, err := NewSequence([]Scene{SceneHero, SceneLetter}, nil, NewTracker(), nil)
	require.NoError(t, err)

	seq.Next()
	require.True(t, seq.AtEnd())

	err = seq.TryNext()
	assert.ErrorIs(t, err, ErrAtBoundary)
	assert.Equal(t, SceneLetter, seq.Current())
}

func TestSequence_PreviousIgnoresLock(t *testing.T) {
	seq, err := NewSequence([]Scene{SceneMood, SceneScanner}, []Scene{SceneScanner}, NewTracker(), nil)
	require.NoError(t, err)

	seq.Next()
	require.True(t, seq.IsLocked(SceneScanner))

	require.NoError(t, seq.TryPrevious())
	assert.Equal(t, SceneMood, seq.Current())
}

func TestSequence_LockReasonWinsOverBoundary(t *testing.T) {
	seq, err := NewSequence([]Scene{SceneScratch}, []Scene{SceneScratch}, NewTracker(), nil)
	require.NoError(t, err)

	err = seq.TryNext()
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, ReasonLocked, rejected.Reason)
	assert.Equal(t, SceneScratch, rejected.Scene)
	assert.ErrorIs(t, err, ErrSceneLocked)
	assert.Contains(t, err.Error(), "SCRATCH")
}

func TestSequence_IsLocked(t *testing.T) {
	seq := newDefaultSequence(t, nil)
	interactive := map[Scene]bool{}
	for _, s := range DefaultInteractive() {
		interactive[s] = true
	}

	for _, s := range DefaultScenes() {
		assert.Equal(t, interactive[s], seq.IsLocked(s), "scene %s", s)
	}

	seq.MarkComplete(SceneContract)
	assert.False(t, seq.IsLocked(SceneContract))
	assert.True(t, seq.IsLocked(ScenePromise))
	assert.False(t, seq.IsLocked(Scene(99)), "unknown scenes are never interactive")
}

func TestSequence_CompletionPersistsAcrossNavigation(t *testing.T) {
	seq := newDefaultSequence(t, nil)
	seq.MarkComplete(SceneCarousel)

	for seq.Current() != SceneQuiz {
		seq.Next()
	}
	seq.MarkComplete(SceneQuiz)
	seq.Next()
	seq.Previous()
	seq.Previous()

	assert.False(t, seq.IsLocked(SceneCarousel))
	assert.False(t, seq.IsLocked(SceneQuiz))
}

func TestSequence_MarkCompleteIdempotent(t *testing.T) {
	rec := &recorder{}
	tracker := NewTracker()
	seq, err := NewSequence(DefaultScenes(), DefaultInteractive(), tracker, rec)
	require.NoError(t, err)

	seq.MarkComplete(SceneCarousel)
	seq.MarkComplete(SceneCarousel)
	seq.MarkComplete(SceneCarousel)

	assert.True(t, tracker.Contains(SceneCarousel))
	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, []EventKind{EventSceneCompleted}, rec.kinds())
}

func TestSequence_Events(t *testing.T) {
	rec := &recorder{}
	seq := newDefaultSequence(t, rec)

	seq.Previous()
	seq.Next()
	for seq.Current() != SceneQuiz {
		seq.Next()
	}
	rec.events = nil

	seq.Next()
	require.Len(t, rec.events, 1)
	got := rec.events[0]
	assert.Equal(t, EventTransitionRejected, got.Kind)
	assert.Equal(t, ReasonLocked, got.Reason)
	assert.Equal(t, Forward, got.Direction)
	assert.Equal(t, SceneQuiz, got.Scene)

	seq.Previous()
	require.Len(t, rec.events, 2)
	moved := rec.events[1]
	assert.Equal(t, EventSceneChanged, moved.Kind)
	assert.Equal(t, SceneQuiz, moved.From)
	assert.Equal(t, SceneCounter, moved.To)
	assert.Equal(t, 3, moved.Index)
	assert.Equal(t, Backward, moved.Direction)
	assert.False(t, moved.At.IsZero())
}

func TestNewSequence_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		scenes      []Scene
		interactive []Scene
		tracker     *Tracker
		wantErr     string
	}{
		{"empty", nil, nil, NewTracker(), "at least one scene"},
		{"nil tracker", []Scene{SceneHero}, nil, nil, "tracker"},
		{"duplicate", []Scene{SceneHero, SceneHero}, nil, NewTracker(), "listed twice"},
		{"foreign interactive", []Scene{SceneHero}, []Scene{SceneQuiz}, NewTracker(), "not in the sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSequence(tt.scenes, tt.interactive, tt.tracker, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// Random walks over the default sequence check the navigation rules on
// every reachable state.
func TestSequence_RandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	interactive := DefaultInteractive()

	for walk := 0; walk < 50; walk++ {
		seq := newDefaultSequence(t, nil)
		for i := 0; i < 400; i++ {
			before := seq.Index()
			locked := seq.IsLocked(seq.Current())
			atEnd := seq.AtEnd()

			switch rng.Intn(3) {
			case 0:
				seq.Next()
				if locked || atEnd {
					require.Equal(t, before, seq.Index(), "next must be a no-op")
				} else {
					require.Equal(t, before+1, seq.Index())
				}
			case 1:
				seq.Previous()
				if before == 0 {
					require.Equal(t, 0, seq.Index())
				} else {
					require.Equal(t, before-1, seq.Index())
				}
			default:
				seq.MarkComplete(interactive[rng.Intn(len(interactive))])
			}

			require.GreaterOrEqual(t, seq.Index(), 0)
			require.Less(t, seq.Index(), seq.Len())
			for _, s := range DefaultScenes() {
				if !seq.IsInteractive(s) {
					require.False(t, seq.IsLocked(s))
				}
			}
		}
	}
}
