package stage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Unlock is the opening screen. Enter opens the journey.
type Unlock struct {
	title string
	done  completion
}

// NewUnlock returns the opening collaborator.
func NewUnlock(title string, onComplete func()) *Unlock {
	return &Unlock{title: title, done: completion{fn: onComplete}}
}

func (u *Unlock) Init() tea.Cmd { return nil }

func (u *Unlock) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Confirm, keys.Toggle) {
		u.done.fire()
	}
	return u, nil
}

func (u *Unlock) View() string {
	var b strings.Builder
	b.WriteString(title("♥ " + u.title + " ♥"))
	b.WriteString("\n")
	b.WriteString(textStyle.Render("Something was made just for you."))
	b.WriteString("\n")
	b.WriteString(hint("press enter to open it"))
	return b.String()
}

func (u *Unlock) Unmount() {}
