package tui

import (
	"context"

	"projlist/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	// Theme is auto|light|dark.
	Theme string
	// Inline keeps the program in the normal screen buffer.
	Inline bool
	// Backend describes where projects are stored, e.g. "sqlite:/home/me/.projlist/projlist.sqlite".
	Backend string
	Logger  *zap.Logger
}

// Run drives core until the user quits. A failed write of the project collection
// ends the program and is returned.
func Run(ctx context.Context, core *app.Model, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(ctx, core, opts)
	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !opts.Inline {
		popts = append(popts, tea.WithAltScreen())
	}
	final, err := tea.NewProgram(m, popts...).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(appModel); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}
