package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"projlist/internal/app"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmClear
)

type appModel struct {
	ctx     context.Context
	core    *app.Model
	log     *zap.Logger
	backend string

	width  int
	height int

	projects table.Model
	form     *projectForm

	settingsFocus settingsFocus
	modal         modalKind
	confirmFocus  confirmModalFocus

	minibuffer    string
	minibufferErr bool

	// fatal is set when a write failed; the program quits and Run returns it.
	fatal error
}

func newAppModel(ctx context.Context, core *app.Model, opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		ctx:     ctx,
		core:    core,
		log:     log,
		backend: opts.Backend,
		width:   80,
		height:  24,
	}
	m.projects = newProjectsTable()
	m.refreshProjects()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case formFinishedMsg:
		return m.handleFormFinished(msg.event)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateConfirmModal(msg)
		}
		m.setMessage("")
		switch m.core.Scene() {
		case app.SceneProjectsList:
			return m.updateProjects(msg)
		case app.SceneNewProjectForm:
			return m.updateForm(msg)
		case app.SceneSettings:
			return m.updateSettings(msg)
		}
	}

	if m.core.Scene() == app.SceneNewProjectForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m appModel) switchTo(s app.Scene) (appModel, tea.Cmd) {
	m.core.SwitchTo(s)
	m.form = nil
	m.modal = modalNone
	switch s {
	case app.SceneNewProjectForm:
		f := newProjectForm(m.core.Form(), m.width)
		m.form = &f
		return m, f.Init()
	case app.SceneSettings:
		m.settingsFocus = settingsFocusClear
	case app.SceneProjectsList:
		m.refreshProjects()
	}
	return m, nil
}

func (m appModel) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		return m.switchTo(app.SceneNewProjectForm)
	case "s":
		return m.switchTo(app.SceneSettings)
	}
	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	f, cmd := m.form.Update(msg)
	m.form = &f
	return m, cmd
}

func (m appModel) handleFormFinished(ev app.FormEvent) (tea.Model, tea.Cmd) {
	changed, err := m.core.HandleForm(m.ctx, ev)
	if err != nil {
		if errors.Is(err, app.ErrPersist) {
			m.fatal = err
			return m, tea.Quit
		}
		m.setError(err)
		return m, nil
	}
	if !changed {
		return m, nil
	}
	m.form = nil
	m.refreshProjects()
	if ev.Kind == app.FormCommit {
		m.projects.GotoBottom()
		m.setMessage(fmt.Sprintf("Added %s", ev.Project.DisplayName()))
	}
	return m, nil
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	case "y":
		return m.answerClear(true)
	case "n", "esc", "ctrl+g":
		return m.answerClear(false)
	case "enter":
		return m.answerClear(m.confirmFocus == confirmFocusConfirm)
	}
	return m, nil
}

// answerClear hands the modal's answer to the core as its confirmer.
func (m appModel) answerClear(yes bool) (tea.Model, tea.Cmd) {
	m.modal = modalNone
	changed, err := m.core.ClearProjects(m.ctx, app.Answer(yes))
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if changed {
		m.refreshProjects()
		m.setMessage("All projects removed")
	}
	return m, nil
}

func (m *appModel) setMessage(s string) {
	m.minibuffer = s
	m.minibufferErr = false
}

func (m *appModel) setError(err error) {
	m.log.Warn("tui action failed", zap.Error(err))
	m.minibuffer = err.Error()
	m.minibufferErr = true
}

func (m *appModel) resize() {
	if m.form != nil {
		m.form.setWidth(m.width)
	}
	m.layoutProjects()
}

func (m appModel) View() string {
	header := m.viewHeader()
	footer := m.viewFooter()

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.core.Scene() {
	case app.SceneProjectsList:
		body = m.viewProjects()
	case app.SceneNewProjectForm:
		if m.form != nil {
			body = m.form.View()
		}
	case app.SceneSettings:
		body = m.viewSettings()
	}
	if m.modal == modalConfirmClear {
		modal := renderConfirmModal(m.width, "Remove all projects", app.ClearPrompt, "Yes", "No", m.confirmFocus)
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, modal)
	}

	return strings.Join([]string{header, normalizePane(body, m.width, bodyH), footer}, "\n")
}

func (m appModel) viewHeader() string {
	n := m.core.Len()
	noun := "projects"
	if n == 1 {
		noun = "project"
	}
	info := fmt.Sprintf("  %d %s", n, noun)
	if m.backend != "" {
		info += "  ·  " + m.backend
	}
	return normalizePane(styleTitle().Render("projlist")+styleChrome().Render(info), m.width, 1) + "\n"
}

func (m appModel) viewFooter() string {
	var help string
	switch {
	case m.modal != modalNone:
		help = "y: yes   n/esc: no"
	case m.core.Scene() == app.SceneProjectsList:
		help = "↑/↓: select   a: add project   s: settings   q: quit"
	case m.core.Scene() == app.SceneNewProjectForm:
		help = "tab/shift+tab: focus   enter: activate   ctrl+s: add   esc: back"
	case m.core.Scene() == app.SceneSettings:
		help = "tab: focus   enter: activate   esc: back"
	}

	mb := m.minibuffer
	if m.minibufferErr && mb != "" {
		mb = styleError().Render(mb)
	}
	return normalizePane(mb, m.width, 1) + "\n" + normalizePane(styleMuted().Render(help), m.width, 1)
}
