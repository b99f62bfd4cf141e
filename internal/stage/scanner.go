package stage

import (
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scannerStep    = 0.125
	heartbeatWidth = 30
	heartbeatRows  = 3
)

// Scanner is the heart scanner: each press charges it and adds a beat to
// the heartbeat line. A full charge completes the scene.
type Scanner struct {
	caption string
	charge  float64
	beats   int
	bar     progress.Model
	pulse   sparkline.Model
	done    completion
}

// NewScanner returns the scanner collaborator.
func NewScanner(caption string, onComplete func()) *Scanner {
	return &Scanner{
		caption: caption,
		bar: progress.New(
			progress.WithGradient("#ff5fd7", "#ff0000"),
			progress.WithWidth(40),
		),
		pulse: sparkline.New(heartbeatWidth, heartbeatRows),
		done:  completion{fn: onComplete},
	}
}

func (s *Scanner) Init() tea.Cmd { return nil }

func (s *Scanner) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || s.Full() || !key.Matches(k, keys.Toggle, keys.Confirm) {
		return s, nil
	}
	s.beats++
	s.charge = math.Min(1, s.charge+scannerStep)
	s.pulse.Push(beat(s.beats))
	s.pulse.Draw()
	if s.Full() {
		s.done.fire()
	}
	return s, nil
}

// beat is a spiky heartbeat shape: a tall peak every fourth sample.
func beat(n int) float64 {
	switch n % 4 {
	case 0:
		return 9
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 1
	}
}

// Full reports whether the scanner is fully charged.
func (s *Scanner) Full() bool { return s.charge >= 1 }

func (s *Scanner) View() string {
	var b strings.Builder
	b.WriteString(title("Heart scanner"))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(s.caption))
	b.WriteString("\n\n")
	if s.beats > 0 {
		b.WriteString(errorStyle.Render(s.pulse.View()))
	} else {
		b.WriteString(dimStyle.Render(strings.Repeat("─", heartbeatWidth)))
	}
	b.WriteString("\n")
	b.WriteString(s.bar.ViewAs(s.charge))
	b.WriteString("\n")
	if s.Full() {
		b.WriteString(successStyle.Render("Match found: 100% compatible"))
	} else {
		b.WriteString(hint("press space to scan"))
	}
	return b.String()
}

func (s *Scanner) Unmount() {}
