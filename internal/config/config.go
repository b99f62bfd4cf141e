// Package config provides configuration loading for keepsake.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then KEEPSAKE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds the complete keepsake configuration.
type Config struct {
	Journey   JourneyConfig   `koanf:"journey"`
	Video     VideoConfig     `koanf:"video"`
	Content   ContentConfig   `koanf:"content"`
	Logging   LoggingConfig   `koanf:"logging"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Status    StatusConfig    `koanf:"status"`
}

// JourneyConfig holds the step-tier behaviour.
type JourneyConfig struct {
	// Secrets are the words accepted at the SECRET step. Compared
	// case-insensitively after trimming.
	Secrets          []Secret `koanf:"secrets"`
	SecretDelay      Duration `koanf:"secret_delay"`
	ShakeReset       Duration `koanf:"shake_reset"`
	AutoplayOnUnlock bool     `koanf:"autoplay_on_unlock"`
}

// VideoConfig holds the VIDEO scene player settings.
type VideoConfig struct {
	AutoHide Duration `koanf:"auto_hide"`
}

// ContentConfig points at an optional content pack.
type ContentConfig struct {
	Path  string `koanf:"path"`
	Watch bool   `koanf:"watch"`
}

// LoggingConfig selects log level, format and outputs.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File receives logs while the terminal UI owns stdout. Empty disables
	// file output.
	File string `koanf:"file"`
	OTEL bool   `koanf:"otel"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled         bool     `koanf:"enabled"`
	Endpoint        string   `koanf:"endpoint"`
	Protocol        string   `koanf:"protocol"`
	Insecure        bool     `koanf:"insecure"`
	TLSSkipVerify   bool     `koanf:"tls_skip_verify"`
	ServiceName     string   `koanf:"service_name"`
	SamplingRate    float64  `koanf:"sampling_rate"`
	MetricsInterval Duration `koanf:"metrics_interval"`
}

// StatusConfig controls the read-only status HTTP server.
type StatusConfig struct {
	// Addr is the listen address. Empty disables the server.
	Addr            string   `koanf:"addr"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Journey: JourneyConfig{
			Secrets:          []Secret{"pattu", "baby"},
			SecretDelay:      Duration(2 * time.Second),
			ShakeReset:       Duration(500 * time.Millisecond),
			AutoplayOnUnlock: true,
		},
		Video: VideoConfig{
			AutoHide: Duration(3 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			Endpoint:        "localhost:4317",
			Protocol:        "grpc",
			Insecure:        true,
			ServiceName:     "keepsake",
			SamplingRate:    1.0,
			MetricsInterval: Duration(15 * time.Second),
		},
		Status: StatusConfig{
			ShutdownTimeout: Duration(5 * time.Second),
		},
	}
}

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Journey.Secrets) == 0 {
		errs = append(errs, errors.New("journey.secrets must list at least one word"))
	}
	for i, s := range c.Journey.Secrets {
		if strings.TrimSpace(s.Value()) == "" {
			errs = append(errs, fmt.Errorf("journey.secrets[%d] is blank", i))
		}
	}
	if c.Journey.ShakeReset.Duration() <= 0 {
		errs = append(errs, errors.New("journey.shake_reset must be positive"))
	}
	if c.Video.AutoHide.Duration() <= 0 {
		errs = append(errs, errors.New("video.auto_hide must be positive"))
	}
	if c.Content.Watch && c.Content.Path == "" {
		errs = append(errs, errors.New("content.watch requires content.path"))
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level %q is not one of trace, debug, info, warn, error", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format must be 'json' or 'console', got %q", c.Logging.Format))
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.Endpoint == "" {
			errs = append(errs, errors.New("telemetry.endpoint is required when telemetry is enabled"))
		}
		switch c.Telemetry.Protocol {
		case "grpc", "http/protobuf":
		default:
			errs = append(errs, fmt.Errorf("telemetry.protocol must be 'grpc' or 'http/protobuf', got %q", c.Telemetry.Protocol))
		}
	}
	if c.Telemetry.SamplingRate < 0 || c.Telemetry.SamplingRate > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sampling_rate must be between 0 and 1, got %v", c.Telemetry.SamplingRate))
	}

	if c.Status.Addr != "" && c.Status.ShutdownTimeout.Duration() <= 0 {
		errs = append(errs, errors.New("status.shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}

// applyDefaults restores defaults for values a file or env var blanked.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = def.Telemetry.Protocol
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = def.Telemetry.ServiceName
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = def.Telemetry.MetricsInterval
	}
}
