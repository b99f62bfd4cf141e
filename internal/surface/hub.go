package surface

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// Action is a hub menu entry.
type Action int

const (
	ActionMusic Action = iota
	ActionCompliment
	ActionHug
	ActionAtmosphere
)

var actions = []Action{ActionMusic, ActionCompliment, ActionHug, ActionAtmosphere}

// Hub is the floating action menu. Its music entry reads and flips the
// shared audio flag; the other entries pop up a message box.
type Hub struct {
	audio   journey.Switch
	keys    KeyMap
	pack    content.Pack
	rng     *rand.Rand
	open    bool
	cursor  int
	message string
}

// NewHub returns a closed hub bound to audio.
func NewHub(audio journey.Switch, pack content.Pack, rng *rand.Rand, keys KeyMap) *Hub {
	return &Hub{audio: audio, pack: pack, rng: rng, keys: keys}
}

// SetPack replaces the message copy.
func (h *Hub) SetPack(p content.Pack) { h.pack = p }

// Open reports whether the menu or a message box is showing.
func (h *Hub) Open() bool { return h.open || h.message != "" }

// Message returns the message box text, or "".
func (h *Hub) Message() string { return h.message }

// Label returns the menu text for a.
func (h *Hub) Label(a Action) string {
	switch a {
	case ActionMusic:
		if h.audio.Get() {
			return "Pause music"
		}
		return "Play music"
	case ActionCompliment:
		return "Compliment me"
	case ActionHug:
		return "Send a hug"
	case ActionAtmosphere:
		return "Set the mood"
	}
	return ""
}

// HandleKey consumes k while the hub is open, or when it opens the hub.
func (h *Hub) HandleKey(k tea.KeyMsg) bool {
	if h.message != "" {
		if key.Matches(k, h.keys.Close, h.keys.Select) {
			h.message = ""
		}
		return true
	}
	if !h.open {
		if key.Matches(k, h.keys.Hub) {
			h.open = true
			h.cursor = 0
			return true
		}
		return false
	}

	switch {
	case key.Matches(k, h.keys.Close, h.keys.Hub):
		h.open = false
	case key.Matches(k, h.keys.Up):
		h.cursor = (h.cursor - 1 + len(actions)) % len(actions)
	case key.Matches(k, h.keys.Down):
		h.cursor = (h.cursor + 1) % len(actions)
	case key.Matches(k, h.keys.Select):
		h.Do(actions[h.cursor])
	}
	return true
}

// Do performs a. Message actions close the menu and show a message box.
func (h *Hub) Do(a Action) {
	switch a {
	case ActionMusic:
		h.audio.Toggle()
		return
	case ActionCompliment:
		h.message = h.pick(h.pack.Compliments)
	case ActionHug:
		h.message = h.pick(h.pack.Hugs)
	case ActionAtmosphere:
		h.message = h.pick(h.pack.Atmosphere)
	}
	h.open = false
}

func (h *Hub) pick(from []string) string {
	if len(from) == 0 {
		return "♥"
	}
	return from[h.rng.Intn(len(from))]
}

func (h *Hub) View() string {
	if h.message != "" {
		return messageStyle.Render(h.message + "\n\n" + disabledStyle.Render("esc to close"))
	}
	if !h.open {
		return ""
	}
	var b strings.Builder
	for i, a := range actions {
		label := h.Label(a)
		if i == h.cursor {
			b.WriteString(cursorStyle.Render("› " + label))
		} else {
			b.WriteString("  " + label)
		}
		if i < len(actions)-1 {
			b.WriteString("\n")
		}
	}
	return menuStyle.Render(b.String())
}
