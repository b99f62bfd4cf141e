package stage

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// Caption is the passive scene: a heading and a line of copy.
type Caption struct {
	scene journey.Scene
	text  string
}

// NewCaption returns a passive collaborator for scene.
func NewCaption(scene journey.Scene, text string) *Caption {
	return &Caption{scene: scene, text: text}
}

func (c *Caption) Init() tea.Cmd { return nil }

func (c *Caption) Update(tea.Msg) (Collaborator, tea.Cmd) { return c, nil }

func (c *Caption) View() string {
	var b strings.Builder
	b.WriteString(title(strings.ToLower(c.scene.String())))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(c.text))
	return b.String()
}

func (c *Caption) Unmount() {}
