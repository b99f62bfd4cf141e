package stage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Milestones reveals a timeline one entry per keypress. Confirming after
// the last entry completes the step.
type Milestones struct {
	items    []string
	revealed int
	done     completion
}

// NewMilestones returns the timeline collaborator.
func NewMilestones(items []string, onComplete func()) *Milestones {
	return &Milestones{items: items, revealed: min(1, len(items)), done: completion{fn: onComplete}}
}

func (m *Milestones) Init() tea.Cmd { return nil }

func (m *Milestones) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(k, keys.Confirm, keys.Right, keys.Toggle) {
		return m, nil
	}
	if m.revealed < len(m.items) {
		m.revealed++
		return m, nil
	}
	if key.Matches(k, keys.Confirm) {
		m.done.fire()
	}
	return m, nil
}

func (m *Milestones) View() string {
	var b strings.Builder
	b.WriteString(title("How far we've come"))
	b.WriteString("\n")
	for i, item := range m.items[:m.revealed] {
		marker := "○"
		if i == m.revealed-1 {
			marker = "●"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, textStyle.Render(item))
		if i < m.revealed-1 {
			b.WriteString(dimStyle.Render("│") + "\n")
		}
	}
	if m.revealed < len(m.items) {
		b.WriteString(hint(fmt.Sprintf("enter for the next one (%d/%d)", m.revealed, len(m.items))))
	} else {
		b.WriteString(hint("enter to continue"))
	}
	return b.String()
}

func (m *Milestones) Unmount() {}
