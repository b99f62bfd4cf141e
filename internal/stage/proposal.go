package stage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/keepsake/internal/content"
)

// Proposal asks a yes/no question where only yes moves on. Choosing no
// hops the cursor back to yes.
type Proposal struct {
	copy   content.Proposal
	yes    bool
	dodges int
	done   completion
}

// NewProposal returns the question collaborator.
func NewProposal(p content.Proposal, onComplete func()) *Proposal {
	return &Proposal{copy: p, yes: true, done: completion{fn: onComplete}}
}

func (p *Proposal) Init() tea.Cmd { return nil }

func (p *Proposal) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(k, keys.Left, keys.Right):
		p.yes = !p.yes
	case key.Matches(k, keys.Confirm):
		if p.yes {
			p.done.fire()
			return p, nil
		}
		p.dodges++
		p.yes = true
	}
	return p, nil
}

// Dodges returns how many times no was chosen.
func (p *Proposal) Dodges() int { return p.dodges }

func (p *Proposal) View() string {
	yes, no := buttonStyle, buttonStyle
	if p.yes {
		yes = selectedStyle
	} else {
		no = selectedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		yes.Render(p.copy.Yes), "   ", no.Render(p.copy.No))

	var b strings.Builder
	b.WriteString(title(p.copy.Question))
	b.WriteString("\n")
	b.WriteString(buttons)
	if p.dodges > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("nice try ", min(p.dodges, 3))))
	}
	b.WriteString("\n")
	b.WriteString(hint("←/→ to choose, enter to answer"))
	return b.String()
}

func (p *Proposal) Unmount() {}
