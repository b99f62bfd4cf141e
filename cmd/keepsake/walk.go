package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/fyrsmithlabs/keepsake/internal/logging"
	"github.com/fyrsmithlabs/keepsake/internal/observe"
	"github.com/fyrsmithlabs/keepsake/internal/walk"
)

var walkStrict bool

// walkCmd drives a session from a script without a terminal UI
var walkCmd = &cobra.Command{
	Use:   "walk [script|-]",
	Short: "Drive a session from a script",
	Long: `Drive a session from a script of commands, one per line, and print the
state after each one.

Commands:
  done              finish the current step (or the journey at FINAL)
  next | prev       move through the scenes
  complete SCENE    report SCENE as finished
  audio toggle|on|off
  state             print the state without changing it

Lines starting with # are ignored. Reads stdin when no script is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().BoolVar(&walkStrict, "strict", false, "print a line for every refused transition")
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var script io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		script = f
	}

	logger, err := newLogger(cfg.Logging, nil, sinkStderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	session, err := journey.NewSession(journey.WithAutoplayOnUnlock(cfg.Journey.AutoplayOnUnlock))
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	ctx := logging.WithSessionID(cmd.Context(), session.ID())
	eventLog := observe.NewLogger(ctx, logger)
	eventLog.Attach(session)
	session.Subscribe(eventLog)

	runner := walk.NewRunner(session, cmd.OutOrStdout(), walk.Options{Strict: walkStrict})
	return runner.Run(script)
}
