package stage

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

func TestCaption(t *testing.T) {
	c := NewCaption(journey.SceneLetter, "One last letter")
	view := c.View()
	assert.Contains(t, view, "letter")
	assert.Contains(t, view, "One last letter")

	next, cmd := c.Update(keyMsg("enter"))
	assert.Same(t, c, next)
	assert.Nil(t, cmd)
}

func TestQuiz(t *testing.T) {
	var c counter
	questions := []content.Question{
		{Prompt: "first?", Options: []string{"a", "b", "c"}, Answer: 2},
		{Prompt: "second?", Options: []string{"x", "y"}, Answer: 0},
	}
	q := NewQuiz(questions, c.done)
	assert.Contains(t, q.View(), "Question 1 of 2")

	press(q, "enter")
	assert.Contains(t, q.View(), "Try again")
	assert.Contains(t, q.View(), "first?")

	press(q, "down", "down", "down", "enter")
	assert.Contains(t, q.View(), "second?")
	assert.NotContains(t, q.View(), "Try again")
	assert.Zero(t, c.n)

	press(q, "up", "enter")
	assert.Equal(t, 1, c.n)
	assert.Contains(t, q.View(), "Perfect")

	press(q, "enter")
	assert.Equal(t, 1, c.n)
}

func TestQuiz_EmptyCompletesImmediately(t *testing.T) {
	var c counter
	NewQuiz(nil, c.done)
	assert.Equal(t, 1, c.n)
}

func TestScanner(t *testing.T) {
	var c counter
	s := NewScanner("scan me", c.done)
	assert.Contains(t, s.View(), "press space")

	for i := 0; i < 7; i++ {
		press(s, " ")
	}
	assert.False(t, s.Full())
	assert.Zero(t, c.n)

	press(s, "enter")
	assert.True(t, s.Full())
	assert.Equal(t, 1, c.n)
	assert.Contains(t, s.View(), "100% compatible")

	press(s, " ")
	assert.Equal(t, 1, c.n)
}

func TestCarousel(t *testing.T) {
	var c counter
	car := NewCarousel([]string{"one", "two", "three"}, c.done)
	assert.Contains(t, car.View(), "one")

	press(car, "left")
	assert.Contains(t, car.View(), "three", "left wraps to the last slide")
	assert.Zero(t, c.n)

	press(car, "left")
	assert.Equal(t, 1, c.n)

	press(car, "right", "right", "right")
	assert.Equal(t, 1, c.n)
}

func TestCarousel_SingleSlide(t *testing.T) {
	var c counter
	NewCarousel([]string{"only"}, c.done)
	assert.Equal(t, 1, c.n)
}

func TestConstellation(t *testing.T) {
	var c counter
	stars := []string{"alpha", "beta", "gamma"}
	con := NewConstellation(stars, rand.New(rand.NewSource(9)), c.done)

	// Selects the star with the given name by moving the cursor to it.
	pick := func(name string) {
		for i, star := range con.layout {
			if stars[star] == name {
				con.cursor = i
			}
		}
		press(con, "enter")
	}

	pick("alpha")
	pick("gamma")
	assert.Contains(t, con.View(), "line broke")
	assert.Equal(t, 0, con.connected)

	pick("alpha")
	pick("beta")
	assert.Zero(t, c.n)
	pick("gamma")
	assert.Equal(t, 1, c.n)
	assert.Contains(t, con.View(), "The sky spells us")
}

func TestConstellation_CursorBounds(t *testing.T) {
	con := NewConstellation([]string{"a", "b"}, rand.New(rand.NewSource(1)), nil)
	press(con, "left")
	assert.Equal(t, 0, con.cursor)
	press(con, "right", "right", "right")
	assert.Equal(t, 1, con.cursor)
}

func TestContract(t *testing.T) {
	var c counter
	con := NewContract([]string{"hugs", "dessert"}, c.done)
	assert.Contains(t, con.View(), "a) hugs")
	assert.Contains(t, con.View(), "b) dessert")

	press(con, " ", "enter")
	assert.False(t, con.Signed(), "blank signature is refused")

	press(con, "Sam", "enter")
	assert.True(t, con.Signed())
	assert.Equal(t, 1, c.n)
	assert.Contains(t, con.View(), "Signed, Sam")

	press(con, "enter")
	assert.Equal(t, 1, c.n)
}

func TestPromise(t *testing.T) {
	var c counter
	p := NewPromise([]string{"listen", "laugh"}, c.done)

	press(p, " ", "enter")
	assert.Zero(t, c.n, "one promise unchecked")
	assert.Contains(t, p.View(), "[x] listen")

	press(p, "down", " ")
	assert.Contains(t, p.View(), "enter to seal")
	press(p, "up", " ", " ")
	press(p, "enter")
	assert.Equal(t, 1, c.n)
	assert.Contains(t, p.View(), "Sealed")

	press(p, " ")
	assert.Contains(t, p.View(), "[x] listen", "sealed promises cannot be unchecked")
}

func TestScratch(t *testing.T) {
	var c counter
	msg := "You are my favourite adventure."
	s := NewScratch(msg, rand.New(rand.NewSource(5)), c.done)
	assert.NotContains(t, s.View(), "favourite")
	assert.Contains(t, s.View(), "░░░ ░░░ ░░ ", "spaces are never hidden")

	strokes := 0
	for !s.Revealed() {
		press(s, " ")
		strokes++
		require.LessOrEqual(t, strokes, scratchStrokes)
	}
	assert.Less(t, strokes, scratchStrokes, "the rest falls away before every patch is scratched")
	assert.Equal(t, 1, c.n)
	assert.Contains(t, s.View(), msg)

	press(s, " ")
	assert.Equal(t, 1, c.n)
}

func TestScratch_BlankMessage(t *testing.T) {
	var c counter
	s := NewScratch("   ", rand.New(rand.NewSource(1)), c.done)
	assert.True(t, s.Revealed())
	assert.Equal(t, 1, c.n)
}
