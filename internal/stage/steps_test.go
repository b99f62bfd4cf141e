package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/keepsake/internal/content"
)

func TestUnlock(t *testing.T) {
	var c counter
	u := NewUnlock("keepsake", c.done)
	assert.Contains(t, u.View(), "keepsake")

	press(u, "x")
	assert.Zero(t, c.n)
	press(u, "enter", "enter")
	assert.Equal(t, 1, c.n)
}

func TestMilestones(t *testing.T) {
	var c counter
	m := NewMilestones([]string{"met", "moved", "today"}, c.done)
	assert.Contains(t, m.View(), "met")
	assert.NotContains(t, m.View(), "moved")

	press(m, "enter", "right")
	assert.Contains(t, m.View(), "today")
	assert.Zero(t, c.n, "revealing the last entry does not complete")

	press(m, " ")
	assert.Zero(t, c.n, "only confirm completes")
	press(m, "enter")
	assert.Equal(t, 1, c.n)
}

func TestMilestones_Empty(t *testing.T) {
	var c counter
	press(NewMilestones(nil, c.done), "enter")
	assert.Equal(t, 1, c.n)
}

func TestProposal(t *testing.T) {
	var c counter
	p := NewProposal(content.Default().Proposal, c.done)

	press(p, "right", "enter")
	assert.Zero(t, c.n)
	assert.Equal(t, 1, p.Dodges())
	assert.Contains(t, p.View(), "nice try")

	press(p, "enter")
	assert.Equal(t, 1, c.n)
}

func TestMemories(t *testing.T) {
	var c counter
	m := NewMemories([]string{"a", "b", "c"}, c.done)

	press(m, "enter")
	assert.Zero(t, c.n, "cards not seen yet")

	press(m, "right", "right", "right")
	assert.Contains(t, m.View(), "3 / 3")
	press(m, "left", "left", "left")
	assert.Contains(t, m.View(), "1 / 3")

	press(m, "enter")
	assert.Equal(t, 1, c.n)
}

func TestTreasure(t *testing.T) {
	var c counter
	clues := []string{"north", "bench"}
	tr := NewTreasure(clues, c.done)
	require.Equal(t, 2, tr.spot)

	press(tr, "enter")
	assert.Contains(t, tr.View(), "north")
	press(tr, "enter")
	assert.Contains(t, tr.View(), "north", "digging the same spot twice reveals nothing new")

	press(tr, "right", "enter")
	assert.Contains(t, tr.View(), "bench")
	assert.Zero(t, c.n)

	press(tr, "right", "right", "enter")
	assert.True(t, tr.Found())
	assert.Equal(t, 1, c.n)

	press(tr, "left", "enter")
	assert.Equal(t, 1, c.n)
}

func TestTreasure_CursorStaysOnGrid(t *testing.T) {
	tr := NewTreasure(nil, nil)
	press(tr, "up", "left")
	assert.Equal(t, 0, tr.cursor)
	press(tr, "down", "down", "down", "right", "right", "right")
	assert.Equal(t, 8, tr.cursor)
}
