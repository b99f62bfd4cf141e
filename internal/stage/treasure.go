package stage

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const treasureGrid = 3

// Treasure is a small dig grid. Each empty spot reveals the next clue;
// digging the treasure spot completes the step.
type Treasure struct {
	clues  []string
	spot   int
	cursor int
	dug    map[int]bool
	shown  int
	found  bool
	done   completion
}

// NewTreasure returns the treasure-hunt collaborator. The treasure sits
// in the cell after the last clue, so the hunt takes at most one dig per
// clue plus one.
func NewTreasure(clues []string, onComplete func()) *Treasure {
	return &Treasure{
		clues: clues,
		spot:  len(clues) % (treasureGrid * treasureGrid),
		dug:   make(map[int]bool),
		done:  completion{fn: onComplete},
	}
}

func (t *Treasure) Init() tea.Cmd { return nil }

func (t *Treasure) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || t.found {
		return t, nil
	}
	row, col := t.cursor/treasureGrid, t.cursor%treasureGrid
	switch {
	case key.Matches(k, keys.Left) && col > 0:
		t.cursor--
	case key.Matches(k, keys.Right) && col < treasureGrid-1:
		t.cursor++
	case key.Matches(k, keys.Up) && row > 0:
		t.cursor -= treasureGrid
	case key.Matches(k, keys.Down) && row < treasureGrid-1:
		t.cursor += treasureGrid
	case key.Matches(k, keys.Confirm, keys.Toggle):
		t.dig()
	}
	return t, nil
}

func (t *Treasure) dig() {
	if t.dug[t.cursor] {
		return
	}
	t.dug[t.cursor] = true
	if t.cursor == t.spot {
		t.found = true
		t.done.fire()
		return
	}
	if t.shown < len(t.clues) {
		t.shown++
	}
}

// Found reports whether the treasure was dug up.
func (t *Treasure) Found() bool { return t.found }

func (t *Treasure) View() string {
	var b strings.Builder
	b.WriteString(title("Find the treasure"))
	b.WriteString("\n")
	for i := 0; i < treasureGrid*treasureGrid; i++ {
		cell := " ? "
		switch {
		case t.found && i == t.spot:
			cell = " ★ "
		case t.dug[i]:
			cell = " · "
		}
		if i == t.cursor {
			b.WriteString(selectedStyle.Render(cell))
		} else {
			b.WriteString(buttonStyle.Render(cell))
		}
		if i%treasureGrid == treasureGrid-1 {
			b.WriteString("\n")
		}
	}
	if t.shown > 0 {
		b.WriteString(textStyle.Render("Clue: " + t.clues[t.shown-1]))
		b.WriteString("\n")
	}
	if t.found {
		b.WriteString(successStyle.Render("You found it!"))
	} else {
		b.WriteString(hint("arrows to move, enter to dig"))
	}
	return b.String()
}

func (t *Treasure) Unmount() {}
