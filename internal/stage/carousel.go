package stage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Carousel cycles through slides. Seeing every slide completes the scene.
type Carousel struct {
	slides []string
	index  int
	seen   map[int]bool
	done   completion
}

// NewCarousel returns the slide collaborator.
func NewCarousel(slides []string, onComplete func()) *Carousel {
	c := &Carousel{slides: slides, seen: map[int]bool{}, done: completion{fn: onComplete}}
	c.visit(0)
	return c
}

func (c *Carousel) Init() tea.Cmd { return nil }

func (c *Carousel) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || len(c.slides) == 0 {
		return c, nil
	}
	switch {
	case key.Matches(k, keys.Right):
		c.visit((c.index + 1) % len(c.slides))
	case key.Matches(k, keys.Left):
		c.visit((c.index - 1 + len(c.slides)) % len(c.slides))
	}
	return c, nil
}

func (c *Carousel) visit(i int) {
	c.index = i
	c.seen[i] = true
	if len(c.seen) >= len(c.slides) {
		c.done.fire()
	}
}

func (c *Carousel) View() string {
	var b strings.Builder
	b.WriteString(title("Snapshots"))
	b.WriteString("\n")
	if len(c.slides) > 0 {
		b.WriteString(cardStyle.Render(textStyle.Render(c.slides[c.index])))
		b.WriteString("\n")
	}
	for i := range c.slides {
		switch {
		case i == c.index:
			b.WriteString(selectedStyle.Render("●"))
		case c.seen[i]:
			b.WriteString(buttonStyle.Render("●"))
		default:
			b.WriteString(dimStyle.Render(" ○ "))
		}
	}
	b.WriteString("\n")
	b.WriteString(hint("←/→ to browse"))
	return b.String()
}

func (c *Carousel) Unmount() {}
