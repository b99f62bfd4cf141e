package logging

import (
	"go.uber.org/zap/zapcore"
)

// newSampledCore gives every configured level below Error its own sampler.
// Error and above, and levels without a sampling entry, pass unsampled.
func newSampledCore(core zapcore.Core, cfg SamplingConfig) zapcore.Core {
	if !cfg.Enabled || len(cfg.Levels) == 0 {
		return core
	}

	sampled := make(map[zapcore.Level]bool, len(cfg.Levels))
	cores := make([]zapcore.Core, 0, len(cfg.Levels)+1)

	for lvl, rate := range cfg.Levels {
		if lvl >= zapcore.ErrorLevel {
			continue
		}
		sampled[lvl] = true
		only := lvl
		cores = append(cores, zapcore.NewSamplerWithOptions(
			&filterCore{Core: core, allow: func(l zapcore.Level) bool { return l == only }},
			cfg.Tick.Duration(),
			rate.Initial,
			rate.Thereafter,
		))
	}

	cores = append(cores, &filterCore{Core: core, allow: func(l zapcore.Level) bool { return !sampled[l] }})

	return zapcore.NewTee(cores...)
}

// filterCore passes only the levels allow accepts.
type filterCore struct {
	zapcore.Core
	allow func(zapcore.Level) bool
}

func (c *filterCore) Enabled(lvl zapcore.Level) bool {
	return c.allow(lvl) && c.Core.Enabled(lvl)
}

func (c *filterCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.allow(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields), allow: c.allow}
}
