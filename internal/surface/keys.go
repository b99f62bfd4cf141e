// Package surface holds the always-on parts of the screen that sit around
// the current step or scene: the floating hub menu, the music player and
// the scene navigation bar.
package surface

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the set of global bindings. Collaborators get every key that
// none of these claim.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Hub       key.Binding
	Close     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	PlayPause key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding
	VolumeUp  key.Binding
	VolumeDn  key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings. They avoid plain letters so
// text prompts keep working.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "pgdown"), key.WithHelp("tab", "next scene")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "pgup"), key.WithHelp("shift+tab", "back")),
		Hub:       key.NewBinding(key.WithKeys("f2", "ctrl+o"), key.WithHelp("ctrl+o", "menu")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		PlayPause: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "play/pause")),
		NextTrack: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "next track")),
		PrevTrack: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "prev track")),
		VolumeUp:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "vol+")),
		VolumeDn:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "vol-")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Hub, k.PlayPause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Hub, k.Quit},
		{k.PlayPause, k.NextTrack, k.PrevTrack, k.VolumeUp, k.VolumeDn},
	}
}
