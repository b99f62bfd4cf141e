package stage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Contract lists terms and asks for a signature. Signing completes the
// scene.
type Contract struct {
	terms  []string
	input  textinput.Model
	signed string
	done   completion
}

// NewContract returns the contract collaborator.
func NewContract(terms []string, onComplete func()) *Contract {
	ti := textinput.New()
	ti.Placeholder = "sign here"
	ti.CharLimit = 48
	ti.Width = 30
	ti.Focus()
	return &Contract{terms: terms, input: ti, done: completion{fn: onComplete}}
}

func (c *Contract) Init() tea.Cmd { return textinput.Blink }

func (c *Contract) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	if c.signed != "" {
		return c, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Confirm) {
		if sig := strings.TrimSpace(c.input.Value()); sig != "" {
			c.signed = sig
			c.input.Blur()
			c.done.fire()
		}
		return c, nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// Signed reports whether the contract has been signed.
func (c *Contract) Signed() bool { return c.signed != "" }

func (c *Contract) View() string {
	var b strings.Builder
	b.WriteString(title("A binding agreement"))
	b.WriteString("\n")
	for i, term := range c.terms {
		b.WriteString(textStyle.Render(string(rune('a'+i%26)) + ") " + term))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if c.signed != "" {
		b.WriteString(successStyle.Render("Signed, " + c.signed))
		return b.String()
	}
	b.WriteString(c.input.View())
	b.WriteString("\n")
	b.WriteString(hint("type your name and press enter"))
	return b.String()
}

func (c *Contract) Unmount() {}
