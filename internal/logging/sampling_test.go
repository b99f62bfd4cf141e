package logging

import (
	"testing"
	"time"

	"github.com/fyrsmithlabs/keepsake/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampledLogger(levels map[zapcore.Level]LevelSamplingConfig) (*zap.Logger, *observer.ObservedLogs) {
	core, observed := observer.New(TraceLevel)
	sampled := newSampledCore(core, SamplingConfig{
		Enabled: true,
		Tick:    config.Duration(time.Minute),
		Levels:  levels,
	})
	return zap.New(sampled), observed
}

func TestSampling_PerLevel(t *testing.T) {
	logger, observed := sampledLogger(map[zapcore.Level]LevelSamplingConfig{
		zapcore.DebugLevel: {Initial: 2, Thereafter: 0},
		zapcore.InfoLevel:  {Initial: 3, Thereafter: 0},
	})

	for i := 0; i < 10; i++ {
		logger.Debug("key routed")
		logger.Info("tick")
		logger.Warn("unsampled warn")
		logger.Error("never sampled")
	}

	assert.Equal(t, 2, observed.FilterMessage("key routed").Len())
	assert.Equal(t, 3, observed.FilterMessage("tick").Len())
	assert.Equal(t, 10, observed.FilterMessage("unsampled warn").Len())
	assert.Equal(t, 10, observed.FilterMessage("never sampled").Len())
}

func TestSampling_ErrorEntriesIgnored(t *testing.T) {
	logger, observed := sampledLogger(map[zapcore.Level]LevelSamplingConfig{
		zapcore.ErrorLevel: {Initial: 1, Thereafter: 0},
	})

	for i := 0; i < 5; i++ {
		logger.Error("boom")
	}
	assert.Equal(t, 5, observed.Len())
}

func TestSampling_Disabled(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(newSampledCore(core, SamplingConfig{Enabled: false}))

	for i := 0; i < 200; i++ {
		logger.Info("same")
	}
	assert.Equal(t, 200, observed.Len())
}

func TestSampling_WithKeepsFilter(t *testing.T) {
	logger, observed := sampledLogger(map[zapcore.Level]LevelSamplingConfig{
		zapcore.InfoLevel: {Initial: 1, Thereafter: 0},
	})
	child := logger.With(zap.String("component", "status"))

	child.Info("started")
	child.Info("started")
	child.Warn("slow")

	assert.Equal(t, 1, observed.FilterMessage("started").Len())
	assert.Equal(t, 1, observed.FilterMessage("slow").Len())
}
