// Package walk replays a line-oriented script against a fresh session and
// reports the state after every command. It drives the same engine as the
// terminal UI without any collaborators.
//
// Script commands, one per line:
//
//	done                 complete the current step
//	next | prev          move through the scenes
//	complete <SCENE>     mark a scene completed
//	audio toggle|on|off  flip or set the ambient audio flag
//	state                print the state without changing it
//
// Blank lines and lines starting with # are skipped.
package walk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// ErrUnknownCommand is wrapped by errors for lines that are not commands.
var ErrUnknownCommand = errors.New("unknown command")

// Options configures a Runner.
type Options struct {
	// Strict prints a "rejected: <reason>" line for every refused
	// transition.
	Strict bool
}

// Runner executes scripts against one session.
type Runner struct {
	session  *journey.Session
	out      io.Writer
	opts     Options
	rejected []journey.Reason
}

// NewRunner returns a runner over session writing state lines to out.
// The runner subscribes itself to session.
func NewRunner(session *journey.Session, out io.Writer, opts Options) *Runner {
	r := &Runner{session: session, out: out, opts: opts}
	session.Subscribe(journey.ObserverFunc(r.observe))
	return r
}

func (r *Runner) observe(e journey.Event) {
	if e.Kind == journey.EventTransitionRejected {
		r.rejected = append(r.rejected, e.Reason)
	}
}

// Run executes every line of script. It stops at the first malformed line
// and returns an error naming its line number.
func (r *Runner) Run(script io.Reader) error {
	scanner := bufio.NewScanner(script)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := r.Exec(text); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

// Exec runs a single command and prints the resulting state.
func (r *Runner) Exec(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty", ErrUnknownCommand)
	}
	r.rejected = r.rejected[:0]

	if err := r.apply(strings.ToLower(fields[0]), fields[1:]); err != nil {
		return err
	}

	if r.opts.Strict {
		for _, reason := range r.rejected {
			if _, err := fmt.Fprintf(r.out, "rejected: %s\n", reason); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(r.out, FormatState(r.session.Snapshot()))
	return err
}

func (r *Runner) apply(cmd string, args []string) error {
	s := r.session
	switch cmd {
	case "done":
		if err := noArgs(cmd, args); err != nil {
			return err
		}
		if s.Mounted() {
			_ = s.Steps().TryAdvance()
			return nil
		}
		s.StepDone(s.Step())()

	case "next", "prev":
		if err := noArgs(cmd, args); err != nil {
			return err
		}
		if cmd == "next" {
			_ = s.NextScene()
		} else {
			_ = s.PrevScene()
		}

	case "complete":
		if len(args) != 1 {
			return fmt.Errorf("complete takes one scene name")
		}
		scene, err := journey.ParseScene(args[0])
		if err != nil {
			return err
		}
		s.SceneDone(scene)()

	case "audio":
		if len(args) != 1 {
			return fmt.Errorf("audio takes one of toggle, on, off")
		}
		switch strings.ToLower(args[0]) {
		case "toggle":
			s.Audio().Toggle()
		case "on":
			s.Audio().Set(true)
		case "off":
			s.Audio().Set(false)
		default:
			return fmt.Errorf("audio takes one of toggle, on, off, got %q", args[0])
		}

	case "state":
		return noArgs(cmd, args)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}

func noArgs(cmd string, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%s takes no arguments", cmd)
	}
	return nil
}

// FormatState renders a snapshot as a single line.
func FormatState(s journey.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "step=%s", s.Step)
	if s.Mounted {
		fmt.Fprintf(&b, " scene=%s index=%d/%d", s.Scene, s.SceneIndex, s.SceneCount)
		if s.Locked {
			b.WriteString(" locked")
		}
	}
	names := make([]string, len(s.Completed))
	for i, c := range s.Completed {
		names[i] = c.String()
	}
	fmt.Fprintf(&b, " completed=[%s]", strings.Join(names, ","))
	if s.Audio {
		b.WriteString(" audio=on")
	} else {
		b.WriteString(" audio=off")
	}
	return b.String()
}
