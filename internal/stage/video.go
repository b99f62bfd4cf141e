package stage

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	videoFrame  = 100 * time.Millisecond
	videoFrames = 100
)

type videoFrameMsg timer
type hideControlsMsg timer

// Video is the spotlight scene. Space plays and pauses. While playing the
// controls hide after a delay; any key shows them again.
type Video struct {
	caption  string
	autoHide time.Duration

	playing  bool
	position int
	controls bool

	frames timer
	hide   timer
	bar    progress.Model
}

// NewVideo returns the video collaborator.
func NewVideo(caption string, autoHide time.Duration) *Video {
	return &Video{
		caption:  caption,
		autoHide: autoHide,
		controls: true,
		frames:   newTimer(),
		hide:     newTimer(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
	}
}

func (v *Video) Init() tea.Cmd { return nil }

func (v *Video) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	switch msg := msg.(type) {
	case videoFrameMsg:
		if !v.playing || !v.frames.current(timer(msg)) {
			return v, nil
		}
		v.position++
		if v.position >= videoFrames {
			v.position = videoFrames
			return v, v.stop()
		}
		return v, v.nextFrame()

	case hideControlsMsg:
		if v.playing && v.hide.current(timer(msg)) {
			v.controls = false
		}
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Toggle) {
			if v.playing {
				return v, v.stop()
			}
			return v, v.play()
		}
		return v, v.showControls()
	}
	return v, nil
}

func (v *Video) play() tea.Cmd {
	if v.position >= videoFrames {
		v.position = 0
	}
	v.playing = true
	return tea.Batch(v.nextFrame(), v.showControls())
}

// stop pauses playback and cancels the pending hide.
func (v *Video) stop() tea.Cmd {
	v.playing = false
	v.frames.bump()
	v.hide.bump()
	v.controls = true
	return nil
}

// showControls makes the controls visible and restarts the hide countdown
// while playing.
func (v *Video) showControls() tea.Cmd {
	v.controls = true
	tok := v.hide.bump()
	if !v.playing {
		return nil
	}
	return tea.Tick(v.autoHide, func(time.Time) tea.Msg { return hideControlsMsg(tok) })
}

func (v *Video) nextFrame() tea.Cmd {
	tok := v.frames.bump()
	return tea.Tick(videoFrame, func(time.Time) tea.Msg { return videoFrameMsg(tok) })
}

// Playing reports whether the video is playing.
func (v *Video) Playing() bool { return v.playing }

// ControlsVisible reports whether the play controls are showing.
func (v *Video) ControlsVisible() bool { return v.controls }

func (v *Video) View() string {
	var b strings.Builder
	b.WriteString(title("Spotlight"))
	b.WriteString("\n")
	screen := v.caption
	if v.playing {
		screen = "▶ " + screen
	}
	b.WriteString(cardStyle.Render(textStyle.Render(screen)))
	b.WriteString("\n")
	if !v.controls {
		return b.String()
	}
	b.WriteString(v.bar.ViewAs(float64(v.position) / videoFrames))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %3d%%", v.position*100/videoFrames)))
	b.WriteString("\n")
	label := "space to play"
	if v.playing {
		label = "space to pause"
	}
	b.WriteString(hint(label))
	return b.String()
}

func (v *Video) Unmount() {
	v.playing = false
	v.frames.bump()
	v.hide.bump()
}
