package stage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Memories pages through memory cards. The step completes on confirm once
// every card has been seen.
type Memories struct {
	cards []string
	page  int
	seen  map[int]bool
	done  completion
}

// NewMemories returns the memory-card collaborator.
func NewMemories(cards []string, onComplete func()) *Memories {
	return &Memories{cards: cards, seen: map[int]bool{0: true}, done: completion{fn: onComplete}}
}

func (m *Memories) Init() tea.Cmd { return nil }

func (m *Memories) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Left):
		if m.page > 0 {
			m.page--
		}
	case key.Matches(k, keys.Right):
		if m.page < len(m.cards)-1 {
			m.page++
			m.seen[m.page] = true
		}
	case key.Matches(k, keys.Confirm):
		if m.allSeen() {
			m.done.fire()
		}
	}
	return m, nil
}

func (m *Memories) allSeen() bool { return len(m.seen) >= len(m.cards) }

func (m *Memories) View() string {
	var b strings.Builder
	b.WriteString(title("Remember when..."))
	b.WriteString("\n")
	if len(m.cards) > 0 {
		b.WriteString(cardStyle.Render(textStyle.Render(m.cards[m.page])))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d / %d", m.page+1, len(m.cards))))
	}
	if m.allSeen() {
		b.WriteString(hint("enter to continue"))
	} else {
		b.WriteString(hint("←/→ to flip through"))
	}
	return b.String()
}

func (m *Memories) Unmount() {}
