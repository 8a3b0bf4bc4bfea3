package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine renders a labelled single-line input, exactly bodyW columns wide.
func renderInputLine(bodyW int, label string, inputView string, focused bool) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// A newline in a textinput view would wrap the row and look like inserted text.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	labelStyle := styleChrome()
	if focused {
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	}

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Terminate ANSI styling after the cut to prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return labelStyle.Render(label) + "\n" + line
}
