package cli

import (
	"context"

	core "projlist/internal/app"
	"projlist/internal/model"
	"projlist/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsAddCmd(app))
	cmd.AddCommand(newProjectsClearCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModel(cmd, app, func(_ context.Context, m *core.Model, st store.Backend) error {
				return writeOut(cmd, app, map[string]any{
					"data": m.Projects(),
					"meta": listMeta(m, st),
				})
			})
		},
	}
}

func listMeta(m *core.Model, st store.Backend) map[string]any {
	return map[string]any{
		"count": m.Len(),
		"key":   m.Key(),
		"store": st.String(),
	}
}

func newProjectsAddCmd(app *App) *cobra.Command {
	var p model.Project

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project (first and last name required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModel(cmd, app, func(ctx context.Context, m *core.Model, st store.Backend) error {
				// Same path as the TUI: fill the form, pass its gate, hand the event over.
				m.SwitchTo(core.SceneNewProjectForm)
				f := m.Form()
				f.SetFirstName(p.FirstName)
				f.SetLastName(p.LastName)
				f.SetDescription(p.Description)
				ev, ok := f.Submit()
				if !ok {
					return writeErr(cmd, errMissingName)
				}

				// Status fields are not part of the form; carry them on the event.
				ev.Project.No = p.No
				ev.Project.Title = p.Title
				ev.Project.Assignee = p.Assignee
				ev.Project.Condition = p.Condition
				ev.Project.Start = p.Start
				ev.Project.LastUpdate = p.LastUpdate
				ev.Project.Report = p.Report
				ev.Project.NextReport = p.NextReport
				ev.Project.Notes = p.Notes

				if _, err := m.HandleForm(ctx, ev); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{
					"data": ev.Project,
					"meta": listMeta(m, st),
				})
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&p.FirstName, "first-name", "", "First name")
	fl.StringVar(&p.LastName, "last-name", "", "Last name")
	fl.StringVar(&p.Description, "description", "", "Description (markdown)")
	fl.StringVar(&p.No, "no", "", "Project number")
	fl.StringVar(&p.Title, "title", "", "Project title")
	fl.StringVar(&p.Assignee, "assignee", "", "Assigned staff member")
	fl.StringVar(&p.Condition, "condition", "", "Condition")
	fl.StringVar(&p.Start, "start", "", "Start")
	fl.StringVar(&p.LastUpdate, "last-update", "", "Last update")
	fl.StringVar(&p.Report, "report", "", "Last report")
	fl.StringVar(&p.NextReport, "next-report", "", "Report for the next meeting")
	fl.StringVar(&p.Notes, "notes", "", "Notes")
	return cmd
}

func newProjectsClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all projects (asks for confirmation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModel(cmd, app, func(ctx context.Context, m *core.Model, st store.Backend) error {
				var confirm core.Confirmer = core.Answer(true)
				if !yes {
					confirm = core.ConfirmFunc(func(prompt string) bool {
						answer, err := app.prompt(prompt + " [y/N] ")
						if err != nil {
							return false
						}
						return isYes(answer)
					})
				}

				n := m.Len()
				cleared, err := m.ClearProjects(ctx, confirm)
				if err != nil {
					return writeErr(cmd, err)
				}
				removed := 0
				if cleared {
					removed = n
				}
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"cleared": cleared, "removed": removed},
					"meta": listMeta(m, st),
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
