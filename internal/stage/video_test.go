package stage

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideo_PlayPause(t *testing.T) {
	v := NewVideo("our film", time.Second)
	assert.Contains(t, v.View(), "space to play")

	_, cmd := v.Update(keyMsg(" "))
	require.NotNil(t, cmd)
	assert.True(t, v.Playing())
	assert.Contains(t, v.View(), "▶ our film")

	v.Update(videoFrameMsg(v.frames))
	assert.Equal(t, 1, v.position)

	v.Update(keyMsg(" "))
	assert.False(t, v.Playing())
	assert.True(t, v.ControlsVisible())

	v.Update(videoFrameMsg(v.frames))
	assert.Equal(t, 1, v.position, "paused video does not advance")
}

func TestVideo_ControlsAutoHide(t *testing.T) {
	v := NewVideo("clip", time.Second)
	v.Update(keyMsg(" "))
	require.True(t, v.ControlsVisible())

	v.Update(hideControlsMsg(v.hide))
	assert.False(t, v.ControlsVisible())
	assert.NotContains(t, v.View(), "space to pause")

	_, cmd := v.Update(keyMsg("x"))
	assert.NotNil(t, cmd, "showing controls restarts the countdown")
	assert.True(t, v.ControlsVisible())
}

func TestVideo_StaleHideIgnored(t *testing.T) {
	v := NewVideo("clip", time.Second)
	v.Update(keyMsg(" "))
	stale := hideControlsMsg(v.hide)

	v.Update(keyMsg("x"))
	v.Update(stale)
	assert.True(t, v.ControlsVisible(), "a key press restarts the countdown")

	v.Update(keyMsg(" "))
	v.Update(hideControlsMsg(v.hide))
	assert.True(t, v.ControlsVisible(), "pausing cancels the pending hide")
}

func TestVideo_UnmountCancelsTimers(t *testing.T) {
	v := NewVideo("clip", time.Second)
	v.Update(keyMsg(" "))
	frame, hide := videoFrameMsg(v.frames), hideControlsMsg(v.hide)

	v.Unmount()
	v.Update(frame)
	v.Update(hide)
	assert.Zero(t, v.position)
	assert.True(t, v.ControlsVisible())
	assert.False(t, v.Playing())
}

func TestVideo_StopsAtEnd(t *testing.T) {
	v := NewVideo("clip", time.Second)
	v.Update(keyMsg(" "))
	for i := 0; i < videoFrames; i++ {
		v.Update(videoFrameMsg(v.frames))
	}
	assert.Equal(t, videoFrames, v.position)
	assert.False(t, v.Playing())
	assert.Contains(t, v.View(), "100%")

	v.Update(keyMsg(" "))
	assert.Zero(t, v.position, "playing again rewinds")
}

func TestVideo_RealHideTick(t *testing.T) {
	v := NewVideo("clip", time.Millisecond)
	_, cmd := v.Update(keyMsg(" "))
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(hideControlsMsg); ok {
			v.Update(msg)
		}
	}
	assert.False(t, v.ControlsVisible())
}
