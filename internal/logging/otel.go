package logging

import (
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newCore tees the configured outputs and wraps them with sampling. The
// returned func closes the log file.
func newCore(cfg *Config, otelProvider log.LoggerProvider) (zapcore.Core, func(), error) {
	cores := make([]zapcore.Core, 0, 4)
	closeOutputs := func() {}

	encoder, err := NewRedactingEncoder(newEncoder(cfg.Format), cfg.Redaction)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redacting encoder: %w", err)
	}

	if cfg.Output.Stdout {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), cfg.Level))
	}
	if cfg.Output.Stderr {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.Lock(os.Stderr), cfg.Level))
	}
	if cfg.Output.File != "" {
		sink, closeFile, err := zap.Open(cfg.Output.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.Output.File, err)
		}
		closeOutputs = closeFile
		cores = append(cores, zapcore.NewCore(encoder.Clone(), sink, cfg.Level))
	}

	if cfg.Output.OTEL && otelProvider != nil {
		cores = append(cores, otelzap.NewCore("github.com/fyrsmithlabs/keepsake",
			otelzap.WithLoggerProvider(otelProvider),
		))
	}

	if len(cores) == 0 {
		closeOutputs()
		return nil, nil, fmt.Errorf("at least one output must be enabled and available")
	}

	core := cores[0]
	if len(cores) > 1 {
		core = zapcore.NewTee(cores...)
	}

	return newSampledCore(core, cfg.Sampling), closeOutputs, nil
}
