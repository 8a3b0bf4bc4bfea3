package tui

import (
	"fmt"
	"strings"

	"projlist/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const labelClearAll = "Remove all projects"

type settingsFocus int

const (
	settingsFocusClear settingsFocus = iota
	settingsFocusBack
)

func (m appModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "up", "down":
		if m.settingsFocus == settingsFocusClear {
			m.settingsFocus = settingsFocusBack
		} else {
			m.settingsFocus = settingsFocusClear
		}
		return m, nil
	case "esc", "q":
		return m.switchTo(app.SceneProjectsList)
	case "enter":
		if m.settingsFocus == settingsFocusBack {
			return m.switchTo(app.SceneProjectsList)
		}
		m.modal = modalConfirmClear
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}
	return m, nil
}

func (m appModel) viewSettings() string {
	label := styleChrome()
	btn := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	btnFocused := btn.Foreground(colorAccentFg).Background(colorAccent).Bold(true)

	clearBtn, backBtn := btn, btn
	if m.settingsFocus == settingsFocusClear {
		clearBtn = btnFocused
	} else {
		backBtn = btnFocused
	}

	backend := m.backend
	if backend == "" {
		backend = "-"
	}
	return strings.Join([]string{
		styleTitle().Render("Settings"),
		"",
		label.Render("Storage:  ") + backend,
		label.Render("Key:      ") + m.core.Key(),
		label.Render("Projects: ") + fmt.Sprint(m.core.Len()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, clearBtn.Render(labelClearAll), " ", backBtn.Render(labelGoBack)),
	}, "\n")
}
