package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/keepsake/internal/config"
	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/fyrsmithlabs/keepsake/internal/logging"
	"github.com/fyrsmithlabs/keepsake/internal/metrics"
	"github.com/fyrsmithlabs/keepsake/internal/observe"
	"github.com/fyrsmithlabs/keepsake/internal/stage"
	"github.com/fyrsmithlabs/keepsake/internal/status"
	"github.com/fyrsmithlabs/keepsake/internal/tui"
)

var (
	playContent    string
	playWatch      bool
	playStatusAddr string
)

// playCmd runs the interactive journey
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the journey in the terminal",
	Long: `Run the journey in the terminal.

Examples:
  # Play with the built-in content
  keepsake play

  # Use your own copy and pick up edits while playing
  keepsake play --content story.yaml --watch

  # Expose /healthz, /api/v1/journey and /metrics
  keepsake play --status-addr 127.0.0.1:8787`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playContent, "content", "", "content pack (.yaml, .yml or .toml)")
	playCmd.Flags().BoolVar(&playWatch, "watch", false, "reload the content pack when it changes")
	playCmd.Flags().StringVar(&playStatusAddr, "status-addr", "", "listen address for the status server")
}

// applyPlayFlags lets explicit flags win over the config file.
func applyPlayFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("content") {
		cfg.Content.Path = playContent
	}
	if cmd.Flags().Changed("watch") {
		cfg.Content.Watch = playWatch
	}
	if cmd.Flags().Changed("status-addr") {
		cfg.Status.Addr = playStatusAddr
	}
}

func runPlay(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyPlayFlags(cmd, cfg)
	if cfg.Content.Watch && cfg.Content.Path == "" {
		return errors.New("--watch needs a content pack")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := newTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		err = errors.Join(err, tel.Shutdown(shutdownCtx))
	}()

	logger, err := newLogger(cfg.Logging, tel, sinkTerminalOwned)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	pack, err := content.LoadPack(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	session, err := journey.NewSession(
		journey.WithAutoplayOnUnlock(cfg.Journey.AutoplayOnUnlock),
		journey.WithObserver(metrics.NewCollector(reg)),
	)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	ctx = logging.WithSessionID(ctx, session.ID())
	ctx = logging.WithLogger(ctx, logger)

	eventLog := observe.NewLogger(ctx, logger)
	eventLog.Attach(session)
	session.Subscribe(eventLog)

	spans := observe.NewTelemetry(ctx, session, tel.TracerProvider(), tel.MeterProvider(), logger.Underlying())
	session.Subscribe(spans)
	defer spans.Close()

	publisher := status.NewPublisher(session)
	session.Subscribe(publisher)
	publisher.Publish()

	model, err := tui.NewModel(session, stage.NewEnv(cfg, pack),
		tui.WithLogger(logger), tui.WithContext(ctx))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Status.Addr != "" {
		srv, err := status.NewServer(publisher, reg, logger.Underlying(), status.Config{
			Addr:            cfg.Status.Addr,
			ShutdownTimeout: cfg.Status.ShutdownTimeout.Duration(),
		})
		if err != nil {
			return fmt.Errorf("status server: %w", err)
		}
		g.Go(func() error { return srv.Run(gctx) })
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx))

	if cfg.Content.Watch {
		w, err := content.Watch(gctx, cfg.Content.Path,
			func(p content.Pack) { program.Send(tui.ContentMsg{Pack: p}) },
			content.WithWatchLogger(logger.Underlying()))
		if err != nil {
			return fmt.Errorf("watching content: %w", err)
		}
		defer func() { _ = w.Close() }()
	}

	logger.Info(ctx, "journey started",
		zap.String("content", cfg.Content.Path),
		zap.Bool("watch", cfg.Content.Watch),
		zap.String("status_addr", cfg.Status.Addr))

	_, runErr := program.Run()
	cancel()
	if errors.Is(runErr, tea.ErrProgramKilled) && gctx.Err() != nil {
		runErr = nil
	}
	if werr := g.Wait(); werr != nil {
		runErr = errors.Join(runErr, werr)
	}

	logger.Info(ctx, "journey ended", zap.Stringer("step", session.Step()))
	return runErr
}
