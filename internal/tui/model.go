// Package tui is the terminal front end. Its Model mounts the collaborator
// for the current step or scene, routes keys between the global surfaces
// and that collaborator, and swaps collaborators as the session moves.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
	"github.com/fyrsmithlabs/keepsake/internal/logging"
	"github.com/fyrsmithlabs/keepsake/internal/stage"
	"github.com/fyrsmithlabs/keepsake/internal/surface"
)

const (
	chromeHeight   = 8
	defaultWidth   = 80
	defaultHeight  = 24
	minViewportRow = 5
)

// ContentMsg delivers a reloaded content pack into the event loop.
type ContentMsg struct {
	Pack content.Pack
}

// mountKey identifies what a collaborator was built for.
type mountKey struct {
	final bool
	step  journey.Step
	scene journey.Scene
}

// Model is the root bubbletea model.
type Model struct {
	ctx      context.Context
	logger   *logging.Logger
	session  *journey.Session
	env      stage.Env
	registry *stage.Registry

	current stage.Collaborator
	mounted mountKey
	hasKey  bool

	keys     surface.KeyMap
	hub      *surface.Hub
	player   *surface.Player
	nav      surface.NavBar
	help     help.Model
	viewport viewport.Model

	notice   string
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for mount and reload events.
func WithLogger(l *logging.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithRegistry replaces the collaborator registry built from the env.
func WithRegistry(r *stage.Registry) Option {
	return func(m *Model) { m.registry = r }
}

// WithContext sets the base context for log correlation.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel returns a model driving session. The first collaborator is
// mounted immediately.
func NewModel(session *journey.Session, env stage.Env, opts ...Option) (Model, error) {
	if session == nil {
		return Model{}, errors.New("session cannot be nil")
	}
	keys := surface.DefaultKeyMap()
	m := Model{
		ctx:      context.Background(),
		logger:   logging.Nop(),
		session:  session,
		env:      env,
		keys:     keys,
		hub:      surface.NewHub(session.Audio(), env.Pack, env.Rand, keys),
		player:   surface.NewPlayer(session.Audio(), env.Pack.Playlist, keys),
		nav:      surface.NewNavBar(keys),
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.registry == nil {
		m.registry = stage.Default(env)
	}
	if err := m.registry.Validate(session.Scenes()); err != nil {
		return Model{}, fmt.Errorf("collaborator registry: %w", err)
	}
	m.ctx = logging.WithSessionID(m.ctx, session.ID())
	m.sync()
	return m, nil
}

// target returns what should be mounted for the current session state.
func (m Model) target() mountKey {
	if !m.session.Mounted() {
		return mountKey{step: m.session.Step()}
	}
	return mountKey{final: true, step: journey.StepFinal, scene: m.session.Sequence().Current()}
}

// sync swaps the mounted collaborator when the session has moved on and
// returns the new collaborator's Init command.
func (m *Model) sync() tea.Cmd {
	want := m.target()
	if m.hasKey && want == m.mounted {
		return nil
	}
	return m.mount(want)
}

func (m *Model) mount(want mountKey) tea.Cmd {
	if m.current != nil {
		m.current.Unmount()
	}

	var (
		factory stage.Factory
		done    func()
	)
	if want.final {
		factory, _ = m.registry.Scene(want.scene)
		done = m.session.SceneDone(want.scene)
	} else {
		factory, _ = m.registry.Step(want.step)
		done = m.session.StepDone(want.step)
	}

	sceneChanged := want.final && (!m.mounted.final || m.mounted.scene != want.scene)
	m.current = factory(done)
	m.mounted = want
	m.hasKey = true
	m.notice = ""

	ctx := m.logContext()
	if want.final {
		m.logger.Debug(ctx, "mounted scene collaborator", zap.Stringer("scene", want.scene))
	} else {
		m.logger.Debug(ctx, "mounted step collaborator", zap.Stringer("step", want.step))
	}

	m.refresh()
	if sceneChanged {
		m.viewport.GotoTop()
	}
	return m.current.Init()
}

func (m Model) logContext() context.Context {
	scene := ""
	if m.mounted.final {
		scene = m.mounted.scene.String()
	}
	return logging.WithJourney(m.ctx, m.mounted.step.String(), scene)
}

// refresh copies the collaborator view into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.current.View())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.current.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(minViewportRow, msg.Height-chromeHeight)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case ContentMsg:
		cmd := m.reload(msg.Pack)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.hub.HandleKey(msg) || m.player.HandleKey(msg) {
			return m, nil
		}
		if dir, ok := m.nav.Direction(msg); ok && m.session.Mounted() {
			m.navigate(dir)
			cmd := m.sync()
			return m, cmd
		}
	}

	next, cmd := m.current.Update(msg)
	m.current = next
	m.refresh()
	mountCmd := m.sync()
	return m, tea.Batch(cmd, mountCmd)
}

func (m *Model) navigate(dir journey.Direction) {
	var err error
	if dir == journey.Forward {
		err = m.session.NextScene()
	} else {
		err = m.session.PrevScene()
	}
	switch {
	case err == nil:
		m.notice = ""
	case errors.Is(err, journey.ErrSceneLocked):
		m.notice = "Finish this scene to continue."
	case errors.Is(err, journey.ErrAtBoundary) && dir == journey.Forward:
		m.notice = "This is the last page of our story."
	case errors.Is(err, journey.ErrAtBoundary):
		m.notice = "This is where it all begins."
	default:
		m.notice = err.Error()
	}
}

// reload rebuilds the registry from the new pack. Passive scenes are
// remounted so new captions show at once; interactive collaborators keep
// their progress and pick up the copy on their next mount.
func (m *Model) reload(pack content.Pack) tea.Cmd {
	m.env.Pack = pack
	m.registry = stage.Default(m.env)
	m.hub.SetPack(pack)
	m.player.SetTracks(pack.Playlist)
	m.logger.Info(m.logContext(), "content reloaded")

	if m.mounted.final && !m.session.Sequence().IsInteractive(m.mounted.scene) {
		return m.mount(m.mounted)
	}
	return nil
}

// Session returns the driven session.
func (m Model) Session() *journey.Session { return m.session }

// Current returns the mounted collaborator.
func (m Model) Current() stage.Collaborator { return m.current }

// Notice returns the last navigation notice, or "".
func (m Model) Notice() string { return m.notice }

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("♥ " + m.env.Pack.Title))
	b.WriteString("  ")
	b.WriteString(stepStyle.Render(m.progress()))
	b.WriteString("\n")
	b.WriteString(m.player.View())
	b.WriteString("\n")

	if m.hub.Open() {
		b.WriteString(m.hub.View())
	} else {
		b.WriteString(m.viewport.View())
	}

	if m.session.Mounted() {
		b.WriteString("\n")
		b.WriteString(m.nav.View(m.session.Snapshot(), m.session.Scenes()))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return containerStyle.Render(b.String())
}

func (m Model) progress() string {
	if !m.session.Mounted() {
		return fmt.Sprintf("step %d/%d · %s", int(m.session.Step())+1, len(journey.AllSteps()), m.session.Step())
	}
	seq := m.session.Sequence()
	return fmt.Sprintf("scene %d/%d · %s", seq.Index()+1, seq.Len(), seq.Current())
}
