package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Journey(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	now := time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)
	s, err := journey.NewSession(
		journey.WithObserver(c),
		journey.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	for !s.Mounted() {
		s.StepDone(s.Step())()
	}
	assert.Equal(t, 6.0, testutil.ToFloat64(c.StepAdvances))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.CurrentStep))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Audio))

	now = now.Add(4 * time.Second)
	require.NoError(t, s.NextScene())
	require.NoError(t, s.PrevScene())
	assert.Error(t, s.PrevScene())

	assert.Equal(t, 1.0, testutil.ToFloat64(c.SceneTransitions.WithLabelValues("forward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SceneTransitions.WithLabelValues("backward")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.SceneIndex))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Rejections.WithLabelValues("scene", "boundary")))

	s.SceneDone(journey.SceneQuiz)()
	s.SceneDone(journey.SceneQuiz)()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SceneCompletions.WithLabelValues("QUIZ")))

	s.Audio().Toggle()
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Audio))

	expected := `
# HELP keepsake_scene_dwell_seconds Time spent on a scene before moving away
# TYPE keepsake_scene_dwell_seconds histogram
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="1"} 0
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="2"} 0
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="4"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="8"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="16"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="32"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="64"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="128"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="256"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="512"} 1
keepsake_scene_dwell_seconds_bucket{scene="GARDEN",le="+Inf"} 1
keepsake_scene_dwell_seconds_sum{scene="GARDEN"} 4
keepsake_scene_dwell_seconds_count{scene="GARDEN"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="1"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="2"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="4"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="8"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="16"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="32"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="64"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="128"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="256"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="512"} 1
keepsake_scene_dwell_seconds_bucket{scene="HERO",le="+Inf"} 1
keepsake_scene_dwell_seconds_sum{scene="HERO"} 0
keepsake_scene_dwell_seconds_count{scene="HERO"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "keepsake_scene_dwell_seconds"))
}

func TestCollector_NotMountedRejection(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	s, err := journey.NewSession(journey.WithObserver(c))
	require.NoError(t, err)

	_ = s.NextScene()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Rejections.WithLabelValues("step", "not_mounted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.StepAdvances))
}

func TestNewCollector_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) }, "duplicate registration")
}
