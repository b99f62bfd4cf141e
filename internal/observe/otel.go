package observe

import (
	"context"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/fyrsmithlabs/keepsake/internal/observe"

// Telemetry records engine events as OpenTelemetry counters and spans.
//
// A "journey.step" span covers each step and a "journey.scene" span covers
// each visit to a scene; both end when the user moves on or on Close.
type Telemetry struct {
	ctx    context.Context
	tracer trace.Tracer
	logger *zap.Logger

	stepAdvances metric.Int64Counter
	transitions  metric.Int64Counter
	completions  metric.Int64Counter
	rejections   metric.Int64Counter
	audioToggles metric.Int64Counter

	first journey.Scene
	root  trace.Span
	step  trace.Span
	scene trace.Span
}

// NewTelemetry creates instruments on mp and opens the root
// "journey.session" span for s. Subscribe the result to s.
func NewTelemetry(ctx context.Context, s *journey.Session, tp trace.TracerProvider, mp metric.MeterProvider, logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	snap := s.Snapshot()
	sessionID := snap.SessionID
	t := &Telemetry{
		tracer: tp.Tracer(instrumentationName),
		logger: logger,
		first:  snap.Scene,
	}
	t.init(mp.Meter(instrumentationName))

	t.ctx, t.root = t.tracer.Start(ctx, "journey.session",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	_, t.step = t.tracer.Start(t.ctx, "journey.step",
		trace.WithAttributes(attribute.String("step", journey.StepUnlock.String())))
	return t
}

func (t *Telemetry) init(meter metric.Meter) {
	var err error

	t.stepAdvances, err = meter.Int64Counter("keepsake.step.advances",
		metric.WithDescription("Journey steps advanced"),
		metric.WithUnit("{step}"))
	if err != nil {
		t.logger.Warn("failed to create step counter", zap.Error(err))
	}

	t.transitions, err = meter.Int64Counter("keepsake.scene.transitions",
		metric.WithDescription("Successful scene transitions, labeled by direction"),
		metric.WithUnit("{transition}"))
	if err != nil {
		t.logger.Warn("failed to create transition counter", zap.Error(err))
	}

	t.completions, err = meter.Int64Counter("keepsake.scene.completions",
		metric.WithDescription("Interactive scenes completed, labeled by scene"),
		metric.WithUnit("{scene}"))
	if err != nil {
		t.logger.Warn("failed to create completion counter", zap.Error(err))
	}

	t.rejections, err = meter.Int64Counter("keepsake.transitions.rejected",
		metric.WithDescription("Refused transitions, labeled by tier and reason"),
		metric.WithUnit("{transition}"))
	if err != nil {
		t.logger.Warn("failed to create rejection counter", zap.Error(err))
	}

	t.audioToggles, err = meter.Int64Counter("keepsake.audio.changes",
		metric.WithDescription("Ambient audio flag changes, labeled by new state"),
		metric.WithUnit("{change}"))
	if err != nil {
		t.logger.Warn("failed to create audio counter", zap.Error(err))
	}
}

// Observe implements journey.Observer.
func (t *Telemetry) Observe(e journey.Event) {
	ctx := t.ctx

	switch e.Kind {
	case journey.EventStepAdvanced:
		add(ctx, t.stepAdvances, attribute.String("step", e.Step.String()))
		endSpan(t.step, e)
		_, t.step = t.tracer.Start(ctx, "journey.step",
			trace.WithTimestamp(e.At),
			trace.WithAttributes(attribute.String("step", e.Step.String())))
		if e.Step == journey.StepFinal {
			t.startScene(t.first, e)
		}
	case journey.EventSceneChanged:
		add(ctx, t.transitions, attribute.String("direction", string(e.Direction)))
		endSpan(t.scene, e)
		t.startScene(e.To, e)
	case journey.EventSceneCompleted:
		add(ctx, t.completions, attribute.String("scene", e.Scene.String()))
		if t.scene != nil {
			t.scene.AddEvent("scene.completed", trace.WithTimestamp(e.At),
				trace.WithAttributes(attribute.String("scene", e.Scene.String())))
		}
	case journey.EventTransitionRejected:
		add(ctx, t.rejections,
			attribute.String("tier", string(e.Tier)),
			attribute.String("reason", string(e.Reason)))
	case journey.EventAudioChanged:
		add(ctx, t.audioToggles, attribute.Bool("on", e.Audio))
	}
}

// startScene opens the span for a scene visit. The first scene is only
// known from the sequence, so the StepFinal event opens it.
func (t *Telemetry) startScene(scene journey.Scene, e journey.Event) {
	_, t.scene = t.tracer.Start(t.ctx, "journey.scene",
		trace.WithTimestamp(e.At),
		trace.WithAttributes(attribute.String("scene", scene.String())))
}

// Close ends any open spans.
func (t *Telemetry) Close() {
	for _, s := range []trace.Span{t.scene, t.step, t.root} {
		if s != nil {
			s.End()
		}
	}
	t.scene, t.step, t.root = nil, nil, nil
}

func add(ctx context.Context, c metric.Int64Counter, attrs ...attribute.KeyValue) {
	if c != nil {
		c.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func endSpan(s trace.Span, e journey.Event) {
	if s != nil {
		s.End(trace.WithTimestamp(e.At))
	}
}
