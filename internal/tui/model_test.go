package tui

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/keepsake/internal/config"
	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/fyrsmithlabs/keepsake/internal/logging"
	"github.com/fyrsmithlabs/keepsake/internal/stage"
)

func testEnv() stage.Env {
	return stage.Env{
		Pack:          content.Default(),
		Secrets:       []config.Secret{"pattu"},
		SecretDelay:   time.Millisecond,
		ShakeReset:    time.Millisecond,
		VideoAutoHide: time.Millisecond,
		Rand:          rand.New(rand.NewSource(1)),
	}
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	s, err := journey.NewSession(journey.WithID("tui-test"))
	require.NoError(t, err)
	m, err := NewModel(s, testEnv(), opts...)
	require.NoError(t, err)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

// run executes cmd once and feeds every resulting message back, without
// following the commands those produce.
func run(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = run(m, c)
		}
		return m
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

// toFinal plays every step with the default collaborators.
func toFinal(t *testing.T, m Model) Model {
	t.Helper()
	m = press(m, "enter")
	require.Equal(t, journey.StepSecret, m.Session().Step())

	m = press(m, "pattu")
	next, cmd := m.Update(keyMsg("enter"))
	m = run(next.(Model), cmd)
	require.Equal(t, journey.StepMilestones, m.Session().Step())

	m = press(m, "enter", "enter", "enter", "enter")
	require.Equal(t, journey.StepProposal, m.Session().Step())

	m = press(m, "enter")
	require.Equal(t, journey.StepMemories, m.Session().Step())

	m = press(m, "right", "right", "enter")
	require.Equal(t, journey.StepTreasure, m.Session().Step())

	m = press(m, "down", "enter")
	require.Equal(t, journey.StepFinal, m.Session().Step())
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, journey.StepUnlock, m.Session().Step())
	assert.IsType(t, &stage.Unlock{}, m.Current())
	assert.False(t, m.quitting)
	assert.Contains(t, m.View(), "step 1/7 · UNLOCK")
}

func TestNewModel_Errors(t *testing.T) {
	_, err := NewModel(nil, testEnv())
	assert.Error(t, err)

	s, err := journey.NewSession()
	require.NoError(t, err)
	_, err = NewModel(s, testEnv(), WithRegistry(stage.NewRegistry()))
	assert.ErrorContains(t, err, "no collaborator for step UNLOCK")
}

func TestModel_Update_QuitKey(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(keyMsg("ctrl+c"))
	assert.True(t, next.(Model).quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(Model).View())
}

func TestModel_FullJourney(t *testing.T) {
	m := toFinal(t, newTestModel(t))
	assert.True(t, m.Session().Audio().Get(), "unlocking starts the music")
	assert.IsType(t, &stage.Caption{}, m.Current())
	assert.Contains(t, m.View(), "Start Story")

	m = press(m, "tab", "tab", "tab", "tab")
	require.Equal(t, journey.SceneQuiz, m.Session().Sequence().Current())
	assert.IsType(t, &stage.Quiz{}, m.Current())

	m = press(m, "tab")
	assert.Equal(t, journey.SceneQuiz, m.Session().Sequence().Current(), "locked quiz holds")
	assert.Contains(t, m.View(), "Finish this scene")

	m = press(m, "enter", "enter")
	assert.True(t, m.Session().Tracker().Contains(journey.SceneQuiz))

	m = press(m, "tab")
	assert.Equal(t, journey.SceneMap, m.Session().Sequence().Current())
	assert.Empty(t, m.Notice())

	m = press(m, "shift+tab", "tab")
	assert.Equal(t, journey.SceneMap, m.Session().Sequence().Current(), "completion survives leaving the scene")
}

func TestModel_BackAtFirstScene(t *testing.T) {
	m := toFinal(t, newTestModel(t))
	m = press(m, "shift+tab")
	assert.Equal(t, 0, m.Session().Sequence().Index())
	assert.Contains(t, m.Notice(), "begins")
}

func TestModel_NavKeysGoToCollaboratorBeforeFinal(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "tab")
	assert.Equal(t, journey.StepUnlock, m.Session().Step())
	assert.Empty(t, m.Notice())
}

func TestModel_HubIsModal(t *testing.T) {
	m := toFinal(t, newTestModel(t))
	m = press(m, "ctrl+o")
	assert.Contains(t, m.View(), "Pause music")

	m = press(m, "tab")
	assert.Equal(t, journey.SceneGarden, m.Session().Sequence().Current(), "keys stay in the open hub")

	m = press(m, "enter")
	assert.False(t, m.Session().Audio().Get())
	m = press(m, "esc", "tab")
	assert.Equal(t, journey.SceneHero, m.Session().Sequence().Current())
}

func TestModel_PlayerKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "ctrl+t")
	assert.True(t, m.Session().Audio().Get())
	assert.Contains(t, m.View(), "Playing")
	assert.Equal(t, journey.StepUnlock, m.Session().Step())
}

func TestModel_ContentReload(t *testing.T) {
	m := toFinal(t, newTestModel(t))
	pack := content.Default()
	pack.Captions["GARDEN"] = "A brand new garden."
	pack.Title = "reloaded"

	next, _ := m.Update(ContentMsg{Pack: pack})
	m = next.(Model)
	assert.Contains(t, m.View(), "A brand new garden.")
	assert.Contains(t, m.View(), "reloaded")
}

func TestModel_ContentReloadKeepsInteractiveProgress(t *testing.T) {
	m := toFinal(t, newTestModel(t))
	m = press(m, "tab", "tab", "tab", "tab")
	quiz := m.Current()
	m = press(m, "enter")

	next, _ := m.Update(ContentMsg{Pack: content.Default()})
	m = next.(Model)
	assert.Same(t, quiz, m.Current())
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 100, m.viewport.Width)
	assert.Equal(t, 40-chromeHeight, m.viewport.Height)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 3})
	assert.Equal(t, minViewportRow, next.(Model).viewport.Height)
}

func TestModel_ViewportResetsOnSceneChange(t *testing.T) {
	m := toFinal(t, newTestModel(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: chromeHeight + minViewportRow})
	m = next.(Model)

	m.viewport.SetContent("1\n2\n3\n4\n5\n6\n7\n8\n9\n10")
	m.viewport.SetYOffset(4)
	require.NotZero(t, m.viewport.YOffset)

	m = press(m, "tab")
	assert.Zero(t, m.viewport.YOffset)
}

func TestModel_LogsMounts(t *testing.T) {
	tl := logging.NewTestLogger()
	m := newTestModel(t, WithLogger(tl.Logger))
	press(m, "enter")

	entries := tl.FilterMessage("mounted step collaborator").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "SECRET", entries[1].ContextMap()["journey.step"])
	assert.Equal(t, "tui-test", entries[1].ContextMap()["session.id"])
}
