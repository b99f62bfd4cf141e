package surface

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

const (
	// VolumeStep is the change per volume key press.
	VolumeStep    = 0.05
	defaultVolume = 0.5
	volumeCells   = 10
)

// ErrNoTracks is reported when the playlist is empty.
var ErrNoTracks = errors.New("playlist is empty")

// Player is the playlist widget. Play state is the shared audio flag;
// track, volume and status line are its own.
type Player struct {
	audio  journey.Switch
	keys   KeyMap
	tracks []content.Track
	index  int
	volume float64
	err    error
}

// NewPlayer returns a player over tracks, bound to audio.
func NewPlayer(audio journey.Switch, tracks []content.Track, keys KeyMap) *Player {
	p := &Player{audio: audio, keys: keys, volume: defaultVolume}
	p.SetTracks(tracks)
	return p
}

// SetTracks replaces the playlist, keeping the position when it still fits.
func (p *Player) SetTracks(tracks []content.Track) {
	p.tracks = append([]content.Track(nil), tracks...)
	p.err = nil
	if len(p.tracks) == 0 {
		p.index = 0
		p.err = ErrNoTracks
		return
	}
	p.index %= len(p.tracks)
}

// HandleKey applies a player binding and reports whether k was one.
func (p *Player) HandleKey(k tea.KeyMsg) bool {
	switch {
	case key.Matches(k, p.keys.PlayPause):
		p.TogglePlay()
	case key.Matches(k, p.keys.NextTrack):
		p.Next()
	case key.Matches(k, p.keys.PrevTrack):
		p.Prev()
	case key.Matches(k, p.keys.VolumeUp):
		p.SetVolume(p.volume + VolumeStep)
	case key.Matches(k, p.keys.VolumeDn):
		p.SetVolume(p.volume - VolumeStep)
	default:
		return false
	}
	return true
}

// TogglePlay flips the shared audio flag.
func (p *Player) TogglePlay() { p.audio.Toggle() }

// Playing reads the shared audio flag.
func (p *Player) Playing() bool { return p.audio.Get() }

// Next skips forward, wrapping to the first track, and starts playback.
func (p *Player) Next() { p.skip(1) }

// Prev skips back, wrapping to the last track, and starts playback.
func (p *Player) Prev() { p.skip(-1) }

func (p *Player) skip(delta int) {
	if len(p.tracks) == 0 {
		return
	}
	n := len(p.tracks)
	p.index = ((p.index+delta)%n + n) % n
	p.audio.Set(true)
}

// Track returns the current track.
func (p *Player) Track() (content.Track, bool) {
	if len(p.tracks) == 0 {
		return content.Track{}, false
	}
	return p.tracks[p.index], true
}

// Index returns the current playlist position.
func (p *Player) Index() int { return p.index }

// Volume returns the volume in [0, 1].
func (p *Player) Volume() float64 { return p.volume }

// SetVolume clamps v to [0, 1] and rounds it to the volume step.
func (p *Player) SetVolume(v float64) {
	v = math.Round(v/VolumeStep) * VolumeStep
	p.volume = math.Max(0, math.Min(1, v))
}

// Status returns the one-line playback status.
func (p *Player) Status() string {
	if p.err != nil {
		return "⚠ " + p.err.Error()
	}
	t, _ := p.Track()
	if p.Playing() {
		return "♪ Playing: " + t.String()
	}
	return "❚❚ Paused: " + t.String()
}

func (p *Player) View() string {
	if p.err != nil {
		return errorStyle.Render(p.Status())
	}
	filled := int(math.Round(p.volume * volumeCells))
	vol := strings.Repeat("▮", filled) + strings.Repeat("▯", volumeCells-filled)
	return playerStyle.Render(fmt.Sprintf("%s  [%d/%d]  vol %s", p.Status(), p.index+1, len(p.tracks), vol))
}
