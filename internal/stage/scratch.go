package stage

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scratchStrokes = 8
	// Past this share the rest of the card falls away.
	scratchReveal = 0.7
)

// Scratch hides a message under a scratch-off layer. Each stroke clears a
// random patch; clearing most of it reveals the rest and completes the
// scene.
type Scratch struct {
	message []rune
	order   []int
	cleared map[int]bool
	done    completion
}

// NewScratch returns the scratch-card collaborator.
func NewScratch(message string, rng *rand.Rand, onComplete func()) *Scratch {
	runes := []rune(message)
	var hidden []int
	for i, r := range runes {
		if !unicode.IsSpace(r) {
			hidden = append(hidden, i)
		}
	}
	rng.Shuffle(len(hidden), func(i, j int) { hidden[i], hidden[j] = hidden[j], hidden[i] })

	s := &Scratch{message: runes, order: hidden, cleared: make(map[int]bool), done: completion{fn: onComplete}}
	if len(hidden) == 0 {
		s.done.fire()
	}
	return s
}

func (s *Scratch) Init() tea.Cmd { return nil }

func (s *Scratch) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || s.Revealed() || !key.Matches(k, keys.Toggle, keys.Confirm) {
		return s, nil
	}
	patch := (len(s.order) + scratchStrokes - 1) / scratchStrokes
	for _, i := range s.order {
		if patch == 0 {
			break
		}
		if !s.cleared[i] {
			s.cleared[i] = true
			patch--
		}
	}
	if float64(len(s.cleared)) >= scratchReveal*float64(len(s.order)) {
		for _, i := range s.order {
			s.cleared[i] = true
		}
		s.done.fire()
	}
	return s, nil
}

// Revealed reports whether the whole message is showing.
func (s *Scratch) Revealed() bool { return len(s.cleared) >= len(s.order) }

func (s *Scratch) View() string {
	var card strings.Builder
	for i, r := range s.message {
		if unicode.IsSpace(r) || s.cleared[i] {
			card.WriteRune(r)
		} else {
			card.WriteRune('░')
		}
	}

	var b strings.Builder
	b.WriteString(title("Scratch to reveal"))
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(textStyle.Render(card.String())))
	b.WriteString("\n")
	if s.Revealed() {
		b.WriteString(successStyle.Render("♥"))
	} else {
		b.WriteString(hint("press space to scratch"))
	}
	return b.String()
}

func (s *Scratch) Unmount() {}
