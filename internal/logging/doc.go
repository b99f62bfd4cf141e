// Package logging provides structured logging for keepsake.
//
// Logger wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Outputs to stdout, stderr, a log file and OpenTelemetry
//   - Context field injection (trace_id, session, step, scene)
//   - Redaction of fields that can carry the user's answers
//   - Per-level sampling (errors never sampled)
//
// The terminal UI owns stdout while a journey is playing, so interactive
// runs log to a file:
//
//	cfg, err := logging.FromConfig(appCfg.Logging)
//	cfg.Output.Stdout = false
//	logger, err := logging.NewLogger(cfg, nil)
//	defer logger.Close()
//
//	ctx = logging.WithSessionID(ctx, session.ID())
//	ctx = logging.WithJourney(ctx, "FINAL", "QUIZ")
//	logger.Info(ctx, "scene completed")
//
// Output includes the correlation fields:
//
//	{"level":"info","msg":"scene completed","session.id":"6f1c...","journey.step":"FINAL","journey.scene":"QUIZ"}
//
// Entered secret words and contract signatures must go through
// RedactedString or config.Secret; the encoder also redacts any field named
// secret, passphrase, answer, signature or word.
//
// Tests use TestLogger:
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "step advanced", zap.String("step", "SECRET"))
//	tl.AssertLogged(t, zapcore.InfoLevel, "step advanced")
//	tl.AssertNoSecrets(t)
package logging
