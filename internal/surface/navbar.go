package surface

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// NavBar renders scene navigation and maps its keys to directions.
type NavBar struct {
	keys KeyMap
}

// NewNavBar returns a nav bar using keys.
func NewNavBar(keys KeyMap) NavBar {
	return NavBar{keys: keys}
}

// Direction maps k to a navigation direction.
func (n NavBar) Direction(k tea.KeyMsg) (journey.Direction, bool) {
	switch {
	case key.Matches(k, n.keys.Next):
		return journey.Forward, true
	case key.Matches(k, n.keys.Prev):
		return journey.Backward, true
	}
	return "", false
}

// ForwardLabel is "Start Story" on the opening garden and "Continue"
// everywhere else.
func ForwardLabel(scene journey.Scene) string {
	if scene == journey.SceneGarden {
		return "Start Story"
	}
	return "Continue"
}

// View renders back and forward controls around the scene dots. Disabled
// controls are dimmed; a locked scene says so.
func (n NavBar) View(snap journey.Snapshot, scenes []journey.Scene) string {
	back := "‹ Back"
	if snap.CanRetreat {
		back = activeStyle.Render(back)
	} else {
		back = disabledStyle.Render(back)
	}

	fwd := ForwardLabel(snap.Scene) + " ›"
	switch {
	case snap.CanAdvance:
		fwd = activeStyle.Render(fwd)
	case snap.Locked:
		fwd = disabledStyle.Render("🔒 " + fwd)
	default:
		fwd = disabledStyle.Render(fwd)
	}

	return barStyle.Render(back + "  " + dots(snap, scenes) + "  " + fwd)
}

func dots(snap journey.Snapshot, scenes []journey.Scene) string {
	done := make(map[journey.Scene]bool, len(snap.Completed))
	for _, s := range snap.Completed {
		done[s] = true
	}
	var b strings.Builder
	for i, s := range scenes {
		switch {
		case i == snap.SceneIndex:
			b.WriteString(activeStyle.Render("●"))
		case done[s]:
			b.WriteString(doneDotStyle.Render("◆"))
		default:
			b.WriteString(dotStyle.Render("·"))
		}
	}
	return b.String()
}
