package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/log"

	"github.com/fyrsmithlabs/keepsake/internal/config"
	"github.com/fyrsmithlabs/keepsake/internal/logging"
	"github.com/fyrsmithlabs/keepsake/internal/telemetry"
)

// logSink picks where logs may go without fighting the command's own
// output.
type logSink int

const (
	// sinkTerminalOwned: the TUI owns stdout and stderr.
	sinkTerminalOwned logSink = iota
	// sinkStderr: stdout carries command output.
	sinkStderr
)

// newLogger builds the application logger. A configured file always
// receives logs; the terminal only when sink allows it.
func newLogger(cfg config.LoggingConfig, tel *telemetry.Telemetry, sink logSink) (*logging.Logger, error) {
	lcfg, err := logging.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("logging config: %w", err)
	}

	var provider log.LoggerProvider
	if cfg.OTEL && tel != nil {
		provider = tel.LoggerProvider()
	}

	lcfg.Output.Stdout = false
	lcfg.Output.OTEL = provider != nil
	if sink == sinkStderr && cfg.File == "" {
		lcfg.Output.Stderr = true
	}
	if lcfg.Output == (logging.OutputConfig{}) {
		return logging.Nop(), nil
	}

	logger, err := logging.NewLogger(lcfg, provider)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

func newTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*telemetry.Telemetry, error) {
	tel, err := telemetry.New(ctx, telemetry.FromConfig(cfg, version))
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}
	return tel, nil
}
