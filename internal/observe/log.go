package observe

import (
	"context"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/fyrsmithlabs/keepsake/internal/logging"
	"go.uber.org/zap"
)

// Logger logs every engine event. Rejections are logged at Debug because
// a locked forward press is routine.
type Logger struct {
	logger  *logging.Logger
	ctx     context.Context
	session *journey.Session
}

// NewLogger returns an observer logging to logger. session supplies the
// correlation fields and may be attached later with Attach.
func NewLogger(ctx context.Context, logger *logging.Logger) *Logger {
	return &Logger{logger: logger, ctx: ctx}
}

// Attach sets the session whose position is added to each entry.
func (l *Logger) Attach(s *journey.Session) {
	l.session = s
	l.ctx = logging.WithSessionID(l.ctx, s.ID())
}

// Observe implements journey.Observer.
func (l *Logger) Observe(e journey.Event) {
	ctx := l.context()

	switch e.Kind {
	case journey.EventStepAdvanced:
		l.logger.Info(ctx, "step advanced", zap.Stringer("step", e.Step))
	case journey.EventSceneChanged:
		l.logger.Info(ctx, "scene changed",
			zap.Stringer("from", e.From),
			zap.Stringer("to", e.To),
			zap.String("direction", string(e.Direction)),
			zap.Int("index", e.Index),
		)
	case journey.EventSceneCompleted:
		l.logger.Info(ctx, "scene completed", zap.Stringer("scene", e.Scene))
	case journey.EventTransitionRejected:
		fields := []zap.Field{
			zap.String("tier", string(e.Tier)),
			zap.String("direction", string(e.Direction)),
			zap.String("reason", string(e.Reason)),
		}
		if e.Tier == journey.TierScene {
			fields = append(fields, zap.Stringer("scene", e.Scene))
		} else {
			fields = append(fields, zap.Stringer("step", e.Step))
		}
		l.logger.Debug(ctx, "transition rejected", fields...)
	case journey.EventAudioChanged:
		l.logger.Debug(ctx, "ambient audio changed", zap.Bool("on", e.Audio))
	}
}

func (l *Logger) context() context.Context {
	if l.session == nil {
		return l.ctx
	}
	scene := ""
	if l.session.Mounted() {
		scene = l.session.Sequence().Current().String()
	}
	return logging.WithJourney(l.ctx, l.session.Step().String(), scene)
}
