package stage

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/keepsake/internal/config"
)

type secretState int

const (
	secretAsking secretState = iota
	secretAccepted
)

type secretAcceptedMsg timer
type shakeResetMsg timer

// Secret asks for a secret word. A match shows a confirmation and
// completes after a delay; a miss shakes the prompt briefly.
type Secret struct {
	input   textinput.Model
	secrets []config.Secret
	delay   time.Duration
	reset   time.Duration

	state  secretState
	shake  bool
	accept timer
	shakeT timer
	done   completion
}

// NewSecret returns the secret-word collaborator.
func NewSecret(secrets []config.Secret, delay, reset time.Duration, onComplete func()) *Secret {
	ti := textinput.New()
	ti.Placeholder = "our secret word"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 64
	ti.Width = 24
	ti.Focus()

	return &Secret{
		input:   ti,
		secrets: secrets,
		delay:   delay,
		reset:   reset,
		accept:  newTimer(),
		shakeT:  newTimer(),
		done:    completion{fn: onComplete},
	}
}

func (s *Secret) Init() tea.Cmd { return textinput.Blink }

func (s *Secret) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	switch msg := msg.(type) {
	case secretAcceptedMsg:
		if s.state == secretAccepted && s.accept.current(timer(msg)) {
			s.done.fire()
		}
		return s, nil

	case shakeResetMsg:
		if s.shakeT.current(timer(msg)) {
			s.shake = false
		}
		return s, nil

	case tea.KeyMsg:
		if s.state == secretAccepted {
			return s, nil
		}
		if key.Matches(msg, keys.Confirm) {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Secret) submit() tea.Cmd {
	if config.MatchAny(s.secrets, s.input.Value()) {
		s.state = secretAccepted
		s.shake = false
		s.shakeT.bump()
		s.input.Blur()
		tok := s.accept.bump()
		return tea.Tick(s.delay, func(time.Time) tea.Msg { return secretAcceptedMsg(tok) })
	}

	s.shake = true
	s.input.SetValue("")
	tok := s.shakeT.bump()
	return tea.Tick(s.reset, func(time.Time) tea.Msg { return shakeResetMsg(tok) })
}

// Accepted reports whether a matching word was entered.
func (s *Secret) Accepted() bool { return s.state == secretAccepted }

// Shaking reports whether the wrong-word hint is showing.
func (s *Secret) Shaking() bool { return s.shake }

func (s *Secret) View() string {
	var b strings.Builder
	b.WriteString(title("What is our secret word?"))
	b.WriteString("\n")

	switch {
	case s.state == secretAccepted:
		b.WriteString(successStyle.Render("✓ That's it. Opening..."))
	case s.shake:
		b.WriteString(shakeStyle.Render(s.input.View()))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Not quite. Try again."))
	default:
		b.WriteString(s.input.View())
		b.WriteString("\n")
		b.WriteString(hint("type it and press enter"))
	}
	return b.String()
}

func (s *Secret) Unmount() {
	s.accept.bump()
	s.shakeT.bump()
}
