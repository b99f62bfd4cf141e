package stage

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Constellation scatters named stars across the sky. Connecting them in
// their listed order completes the scene; a wrong star breaks the line.
type Constellation struct {
	stars     []string
	layout    []int
	cursor    int
	connected int
	broken    bool
	done      completion
}

// NewConstellation returns the star-joining collaborator. rng shuffles the
// on-screen order.
func NewConstellation(stars []string, rng *rand.Rand, onComplete func()) *Constellation {
	c := &Constellation{stars: stars, layout: rng.Perm(len(stars)), done: completion{fn: onComplete}}
	if len(stars) == 0 {
		c.done.fire()
	}
	return c
}

func (c *Constellation) Init() tea.Cmd { return nil }

func (c *Constellation) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || c.complete() {
		return c, nil
	}
	switch {
	case key.Matches(k, keys.Left):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(k, keys.Right):
		if c.cursor < len(c.layout)-1 {
			c.cursor++
		}
	case key.Matches(k, keys.Confirm, keys.Toggle):
		c.connect(c.layout[c.cursor])
	}
	return c, nil
}

func (c *Constellation) connect(star int) {
	if star != c.connected {
		c.connected = 0
		c.broken = true
		return
	}
	c.broken = false
	c.connected++
	if c.complete() {
		c.done.fire()
	}
}

func (c *Constellation) complete() bool { return c.connected >= len(c.stars) }

func (c *Constellation) View() string {
	var b strings.Builder
	b.WriteString(title("Our constellation"))
	b.WriteString("\n")
	for i, star := range c.layout {
		label := "✦ " + c.stars[star]
		if star < c.connected {
			label = "★ " + c.stars[star]
		}
		switch {
		case i == c.cursor && !c.complete():
			b.WriteString(selectedStyle.Render(label))
		case star < c.connected:
			b.WriteString(successStyle.Render(" " + label + " "))
		default:
			b.WriteString(buttonStyle.Render(label))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	if c.connected > 0 {
		b.WriteString(dimStyle.Render(strings.Join(c.stars[:c.connected], " ─ ")))
		b.WriteString("\n")
	}
	switch {
	case c.complete():
		b.WriteString(successStyle.Render("The sky spells us."))
	case c.broken:
		b.WriteString(errorStyle.Render("The line broke. Start again from the first star."))
	default:
		b.WriteString(hint("connect: " + strings.Join(c.stars, " → ")))
	}
	return b.String()
}

func (c *Constellation) Unmount() {}
