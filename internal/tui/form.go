package tui

import (
	"strings"

	"projlist/internal/app"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	labelAddNew = "Add New"
	labelGoBack = "Go Back"
)

type formFocus int

const (
	focusFirstName formFocus = iota
	focusLastName
	focusDescription
	focusSubmit
	focusBack
	formFocusCount
)

// formFinishedMsg is sent by the embedded project form to the parent app model
// when the user commits or aborts.
type formFinishedMsg struct {
	event app.FormEvent
}

// projectForm is the editing surface for app.Form. Every edit is pushed into the
// core form, which owns the draft and the submit gate.
type projectForm struct {
	core *app.Form

	firstName   textinput.Model
	lastName    textinput.Model
	description textarea.Model

	focus formFocus
	width int
}

func newProjectForm(core *app.Form, width int) projectForm {
	f := projectForm{core: core}

	f.firstName = textinput.New()
	f.firstName.Prompt = ""
	f.firstName.Placeholder = "First Name"

	f.lastName = textinput.New()
	f.lastName.Prompt = ""
	f.lastName.Placeholder = "Last Name"

	f.description = textarea.New()
	f.description.Placeholder = "Description (markdown)"
	f.description.ShowLineNumbers = false
	f.description.CharLimit = 0
	f.description.SetHeight(5)

	d := core.Draft()
	f.firstName.SetValue(d.FirstName)
	f.lastName.SetValue(d.LastName)
	f.description.SetValue(d.Description)

	f.setWidth(width)
	f.setFocus(focusFirstName)
	return f
}

func (f *projectForm) setWidth(width int) {
	f.width = width
	w := formBodyWidth(width)
	f.firstName.Width = w - 2
	f.lastName.Width = w - 2
	f.description.SetWidth(w)
}

func formBodyWidth(termW int) int {
	w := termW - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (f *projectForm) setFocus(next formFocus) tea.Cmd {
	f.focus = (next + formFocusCount) % formFocusCount
	f.firstName.Blur()
	f.lastName.Blur()
	f.description.Blur()
	switch f.focus {
	case focusFirstName:
		return f.firstName.Focus()
	case focusLastName:
		return f.lastName.Focus()
	case focusDescription:
		return f.description.Focus()
	}
	return nil
}

func (f projectForm) Init() tea.Cmd { return textinput.Blink }

func (f projectForm) Update(msg tea.Msg) (projectForm, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	next := f.focus
	switch km.String() {
	case "esc":
		return f, finishForm(f.core.Abort())
	case "ctrl+s":
		return f.submit()
	case "tab":
		next = f.focus + 1
	case "shift+tab":
		next = f.focus - 1
	case "enter":
		switch f.focus {
		case focusSubmit:
			return f.submit()
		case focusBack:
			return f, finishForm(f.core.Abort())
		case focusFirstName, focusLastName:
			next = f.focus + 1
		}
	case "left", "right":
		switch f.focus {
		case focusSubmit:
			next = focusBack
		case focusBack:
			next = focusSubmit
		}
	}
	if next != f.focus {
		cmd := f.setFocus(next)
		return f, cmd
	}
	return f.updateFocused(msg)
}

func (f projectForm) updateFocused(msg tea.Msg) (projectForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusFirstName:
		f.firstName, cmd = f.firstName.Update(msg)
		f.core.SetFirstName(f.firstName.Value())
	case focusLastName:
		f.lastName, cmd = f.lastName.Update(msg)
		f.core.SetLastName(f.lastName.Value())
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
		f.core.SetDescription(f.description.Value())
	}
	return f, cmd
}

// submit is a no-op while the gate is closed; "Add New" is rendered disabled then.
func (f projectForm) submit() (projectForm, tea.Cmd) {
	ev, ok := f.core.Submit()
	if !ok {
		return f, nil
	}
	f.firstName.Reset()
	f.lastName.Reset()
	f.description.Reset()
	return f, finishForm(ev)
}

func finishForm(ev app.FormEvent) tea.Cmd {
	return func() tea.Msg {
		return formFinishedMsg{event: ev}
	}
}

func (f projectForm) View() string {
	bodyW := formBodyWidth(f.width)

	descLabel := styleChrome().Render("Description")
	if f.focus == focusDescription {
		descLabel = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Description")
	}

	btn := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	btnFocused := btn.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	btnDisabled := styleMuted().Padding(0, 1).Background(colorControlBg)

	submit := btn
	switch {
	case !f.core.CanSubmit():
		submit = btnDisabled
	case f.focus == focusSubmit:
		submit = btnFocused
	}
	back := btn
	if f.focus == focusBack {
		back = btnFocused
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, submit.Render(labelAddNew), " ", back.Render(labelGoBack))

	return strings.Join([]string{
		styleTitle().Render("New project"),
		"",
		renderInputLine(bodyW, "First Name", f.firstName.View(), f.focus == focusFirstName),
		"",
		renderInputLine(bodyW, "Last Name", f.lastName.View(), f.focus == focusLastName),
		"",
		descLabel,
		f.description.View(),
		"",
		buttons,
	}, "\n")
}
