// Package metrics exposes journey progress as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector is a journey.Observer that records engine events.
//
// Metrics:
//   - keepsake_step_advances_total - steps advanced
//   - keepsake_current_step - index of the current step
//   - keepsake_scene_transitions_total{direction} - successful scene moves
//   - keepsake_current_scene_index - index of the current scene
//   - keepsake_scene_completions_total{scene} - first completions
//   - keepsake_transitions_rejected_total{tier,reason} - refused moves
//   - keepsake_ambient_audio - 1 while ambient audio is on
//   - keepsake_scene_dwell_seconds{scene} - time spent on a scene before leaving
type Collector struct {
	StepAdvances     prometheus.Counter
	CurrentStep      prometheus.Gauge
	SceneTransitions *prometheus.CounterVec
	SceneIndex       prometheus.Gauge
	SceneCompletions *prometheus.CounterVec
	Rejections       *prometheus.CounterVec
	Audio            prometheus.Gauge
	SceneDwell       *prometheus.HistogramVec

	enteredAt time.Time
}

var _ journey.Observer = (*Collector)(nil)

// NewCollector registers the journey metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		StepAdvances: f.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_step_advances_total",
			Help: "Total number of journey steps advanced",
		}),
		CurrentStep: f.NewGauge(prometheus.GaugeOpts{
			Name: "keepsake_current_step",
			Help: "Index of the current journey step",
		}),
		SceneTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keepsake_scene_transitions_total",
			Help: "Total number of successful scene transitions",
		}, []string{"direction"}),
		SceneIndex: f.NewGauge(prometheus.GaugeOpts{
			Name: "keepsake_current_scene_index",
			Help: "Index of the current scene in the sequence",
		}),
		SceneCompletions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keepsake_scene_completions_total",
			Help: "Interactive scenes completed for the first time",
		}, []string{"scene"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keepsake_transitions_rejected_total",
			Help: "Transitions refused by the engine",
		}, []string{"tier", "reason"}),
		Audio: f.NewGauge(prometheus.GaugeOpts{
			Name: "keepsake_ambient_audio",
			Help: "1 while ambient audio is on",
		}),
		SceneDwell: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keepsake_scene_dwell_seconds",
			Help:    "Time spent on a scene before moving away",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1s to ~8.5m
		}, []string{"scene"}),
	}
}

// Observe implements journey.Observer.
func (c *Collector) Observe(e journey.Event) {
	switch e.Kind {
	case journey.EventStepAdvanced:
		c.StepAdvances.Inc()
		c.CurrentStep.Set(float64(e.Step))
		if e.Step == journey.StepFinal {
			c.enteredAt = e.At
		}
	case journey.EventSceneChanged:
		c.SceneTransitions.WithLabelValues(string(e.Direction)).Inc()
		c.SceneIndex.Set(float64(e.Index))
		if !c.enteredAt.IsZero() && !e.At.Before(c.enteredAt) {
			c.SceneDwell.WithLabelValues(e.From.String()).Observe(e.At.Sub(c.enteredAt).Seconds())
		}
		c.enteredAt = e.At
	case journey.EventSceneCompleted:
		c.SceneCompletions.WithLabelValues(e.Scene.String()).Inc()
	case journey.EventTransitionRejected:
		c.Rejections.WithLabelValues(string(e.Tier), string(e.Reason)).Inc()
	case journey.EventAudioChanged:
		if e.Audio {
			c.Audio.Set(1)
		} else {
			c.Audio.Set(0)
		}
	}
}
