package stage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/keepsake/internal/content"
)

// Quiz asks multiple-choice questions in order. A wrong answer keeps the
// question; answering the last one correctly completes the scene.
type Quiz struct {
	questions []content.Question
	current   int
	cursor    int
	wrong     bool
	done      completion
}

// NewQuiz returns the quiz collaborator.
func NewQuiz(questions []content.Question, onComplete func()) *Quiz {
	q := &Quiz{questions: questions, done: completion{fn: onComplete}}
	if len(questions) == 0 {
		q.done.fire()
	}
	return q
}

func (q *Quiz) Init() tea.Cmd { return nil }

func (q *Quiz) Update(msg tea.Msg) (Collaborator, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || q.finished() {
		return q, nil
	}
	opts := q.questions[q.current].Options
	switch {
	case key.Matches(k, keys.Up):
		if q.cursor > 0 {
			q.cursor--
		}
	case key.Matches(k, keys.Down):
		if q.cursor < len(opts)-1 {
			q.cursor++
		}
	case key.Matches(k, keys.Confirm):
		q.answer()
	}
	return q, nil
}

func (q *Quiz) answer() {
	if q.cursor != q.questions[q.current].Answer {
		q.wrong = true
		return
	}
	q.wrong = false
	q.cursor = 0
	q.current++
	if q.finished() {
		q.done.fire()
	}
}

func (q *Quiz) finished() bool { return q.current >= len(q.questions) }

func (q *Quiz) View() string {
	var b strings.Builder
	b.WriteString(title("How well do you know us?"))
	b.WriteString("\n")
	if q.finished() {
		b.WriteString(successStyle.Render("Perfect score ♥"))
		return b.String()
	}

	question := q.questions[q.current]
	b.WriteString(dimStyle.Render(fmt.Sprintf("Question %d of %d", q.current+1, len(q.questions))))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(question.Prompt))
	b.WriteString("\n\n")
	for i, opt := range question.Options {
		if i == q.cursor {
			b.WriteString(selectedStyle.Render("› " + opt))
		} else {
			b.WriteString(buttonStyle.Render("  " + opt))
		}
		b.WriteString("\n")
	}
	if q.wrong {
		b.WriteString(errorStyle.Render("Not that one. Try again."))
	} else {
		b.WriteString(hint("↑/↓ to choose, enter to answer"))
	}
	return b.String()
}

func (q *Quiz) Unmount() {}
