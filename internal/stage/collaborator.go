// Package stage holds the step and scene collaborators: the content shown
// for each journey step and story scene.
//
// Collaborators are black boxes to the engine. They render themselves,
// react to terminal input and, when interactive, report success through
// the completion callback they were built with. They never touch engine
// state directly.
package stage

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Collaborator is the content shown for one step or scene.
type Collaborator interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Collaborator, tea.Cmd)
	View() string
	// Unmount cancels pending timers. The collaborator is discarded after.
	Unmount()
}

// Factory builds a collaborator. Interactive collaborators call onComplete
// once when the user succeeds; passive ones never call it.
type Factory func(onComplete func()) Collaborator

var instances atomic.Uint64

// timer tags tick messages so a collaborator only acts on its own ticks
// from its current generation. Bumping the generation cancels every tick
// already in flight.
type timer struct {
	owner uint64
	gen   uint64
}

func newTimer() timer {
	return timer{owner: instances.Add(1)}
}

// bump invalidates outstanding ticks and returns the new token.
func (t *timer) bump() timer {
	t.gen++
	return *t
}

// current reports whether tok was issued by this timer at its current
// generation.
func (t timer) current(tok timer) bool {
	return tok == t
}

// completion calls fn at most once.
type completion struct {
	fn   func()
	done bool
}

func (c *completion) fire() {
	if c.done {
		return
	}
	c.done = true
	if c.fn != nil {
		c.fn()
	}
}
