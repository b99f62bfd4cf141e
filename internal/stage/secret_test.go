package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/keepsake/internal/config"
)

func newTestSecret(c *counter) *Secret {
	return NewSecret([]config.Secret{"pattu", "baby"}, time.Millisecond, time.Millisecond, c.done)
}

func TestSecret_WrongWordShakes(t *testing.T) {
	var c counter
	s := newTestSecret(&c)

	_, cmd := s.Update(keyMsg("nope"))
	_ = cmd
	_, cmd = s.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	assert.True(t, s.Shaking())
	assert.False(t, s.Accepted())
	assert.Empty(t, s.input.Value(), "input is cleared after a miss")
	assert.Contains(t, s.View(), "Try again")

	s.Update(cmd())
	assert.False(t, s.Shaking())
	assert.Zero(t, c.n)
}

func TestSecret_StaleShakeResetIgnored(t *testing.T) {
	var c counter
	s := newTestSecret(&c)

	press(s, "x", "enter")
	stale := shakeResetMsg(s.shakeT)
	press(s, "y", "enter")

	s.Update(stale)
	assert.True(t, s.Shaking(), "reset from the first miss must not clear the second")

	s.Update(shakeResetMsg(s.shakeT))
	assert.False(t, s.Shaking())
}

func TestSecret_AcceptsNormalizedWord(t *testing.T) {
	for _, word := range []string{"pattu", "  PATTU ", "Baby"} {
		t.Run(word, func(t *testing.T) {
			var c counter
			s := newTestSecret(&c)

			s.Update(keyMsg(word))
			_, cmd := s.Update(keyMsg("enter"))
			require.NotNil(t, cmd)
			assert.True(t, s.Accepted())
			assert.Contains(t, s.View(), "That's it")
			assert.Zero(t, c.n, "completion waits for the delay")

			s.Update(cmd())
			assert.Equal(t, 1, c.n)

			s.Update(secretAcceptedMsg(s.accept))
			assert.Equal(t, 1, c.n, "completion fires once")
		})
	}
}

func TestSecret_IgnoresInputAfterAccept(t *testing.T) {
	var c counter
	s := newTestSecret(&c)
	press(s, "baby", "enter")

	_, cmd := s.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	press(s, "more")
	assert.Equal(t, "baby", s.input.Value())
}

func TestSecret_UnmountCancelsPendingCompletion(t *testing.T) {
	var c counter
	s := newTestSecret(&c)
	press(s, "pattu")
	_, cmd := s.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	s.Unmount()
	s.Update(cmd())
	assert.Zero(t, c.n)
}

func TestSecret_CorrectAfterMissClearsShake(t *testing.T) {
	var c counter
	s := newTestSecret(&c)
	press(s, "nope", "enter")
	require.True(t, s.Shaking())

	press(s, "pattu", "enter")
	assert.False(t, s.Shaking())
	assert.True(t, s.Accepted())
}
