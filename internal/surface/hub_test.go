package surface

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

func newTestHub() (*Hub, *journey.Toggle) {
	audio := journey.NewToggle(nil)
	return NewHub(audio, content.Default(), rand.New(rand.NewSource(1)), DefaultKeyMap()), audio
}

func TestHub_OpensAndCloses(t *testing.T) {
	h, _ := newTestHub()
	assert.False(t, h.HandleKey(keyMsg("x")), "closed hub ignores other keys")
	assert.Empty(t, h.View())

	require.True(t, h.HandleKey(keyMsg("ctrl+o")))
	assert.True(t, h.Open())
	assert.Contains(t, h.View(), "Play music")

	assert.True(t, h.HandleKey(keyMsg("x")), "open hub swallows keys")
	h.HandleKey(keyMsg("esc"))
	assert.False(t, h.Open())
}

func TestHub_MusicLabelFollowsSharedFlag(t *testing.T) {
	h, audio := newTestHub()
	p := NewPlayer(audio, content.Default().Playlist, DefaultKeyMap())

	h.HandleKey(keyMsg("ctrl+o"))
	h.HandleKey(keyMsg("enter"))
	assert.True(t, audio.Get())
	assert.True(t, p.Playing(), "both surfaces see the same flag")
	assert.Equal(t, "Pause music", h.Label(ActionMusic))
	assert.True(t, h.Open(), "music toggle keeps the menu open")

	p.TogglePlay()
	assert.Equal(t, "Play music", h.Label(ActionMusic))
	assert.Contains(t, h.View(), "Play music")
}

func TestHub_ToggleTwiceRestores(t *testing.T) {
	h, audio := newTestHub()
	h.Do(ActionMusic)
	h.Do(ActionMusic)
	assert.False(t, audio.Get())
}

func TestHub_Messages(t *testing.T) {
	pack := content.Default()
	tests := []struct {
		name   string
		moves  []string
		source []string
	}{
		{"compliment", []string{"down"}, pack.Compliments},
		{"hug", []string{"down", "down"}, pack.Hugs},
		{"atmosphere", []string{"up"}, pack.Atmosphere},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, audio := newTestHub()
			h.HandleKey(keyMsg("ctrl+o"))
			for _, m := range tt.moves {
				h.HandleKey(keyMsg(m))
			}
			h.HandleKey(keyMsg("enter"))

			assert.Contains(t, tt.source, h.Message())
			assert.Contains(t, h.View(), "esc to close")
			assert.False(t, audio.Get())

			assert.True(t, h.HandleKey(keyMsg("tab")), "message box is modal")
			h.HandleKey(keyMsg("esc"))
			assert.Empty(t, h.Message())
			assert.False(t, h.Open())
		})
	}
}

func TestHub_EmptyCopy(t *testing.T) {
	h, _ := newTestHub()
	h.SetPack(content.Pack{})
	h.Do(ActionHug)
	assert.Equal(t, "♥", h.Message())
}
