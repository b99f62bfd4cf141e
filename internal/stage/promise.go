package stage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Promise is a checklist. Sealing it with every promise checked completes
// the scene.
type Promise struct {
	items   []string
	checked []bool
	cursor  int
	sealed  bool
	done    completion
}

// NewPromise returns the checklist collaborator.
func NewPromise(items []string, onComplete func()) *Promise {
	return &Promise{items: items, checked: make([]bool, len(items)), done: completion{fn: onComplete}}
}

func (p *Promise) Init() tea.Cmd { return nil }

func (p *Promise) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || p.sealed {
		return p, nil
	}
	switch {
	case key.Matches(k, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(k, keys.Down):
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case key.Matches(k, keys.Toggle):
		if len(p.items) > 0 {
			p.checked[p.cursor] = !p.checked[p.cursor]
		}
	case key.Matches(k, keys.Confirm):
		if p.allChecked() {
			p.sealed = true
			p.done.fire()
		}
	}
	return p, nil
}

func (p *Promise) allChecked() bool {
	for _, c := range p.checked {
		if !c {
			return false
		}
	}
	return true
}

func (p *Promise) View() string {
	var b strings.Builder
	b.WriteString(title("Promises"))
	b.WriteString("\n")
	for i, item := range p.items {
		box := "[ ] "
		if p.checked[i] {
			box = "[x] "
		}
		line := box + item
		if i == p.cursor && !p.sealed {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(textStyle.Render(line))
		}
		b.WriteString("\n")
	}
	switch {
	case p.sealed:
		b.WriteString(successStyle.Render("Sealed with a kiss."))
	case p.allChecked():
		b.WriteString(hint("enter to seal"))
	default:
		b.WriteString(hint("space to check, ↑/↓ to move"))
	}
	return b.String()
}

func (p *Promise) Unmount() {}
