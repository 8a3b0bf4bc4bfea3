package tui

import (
	"strconv"
	"strings"

	"projlist/internal/model"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const detailHeight = 8

var projectColumns = []struct {
	title string
	min   int
	value func(i int, p model.Project) string
}{
	{"#", 3, func(i int, p model.Project) string {
		if p.No != "" {
			return p.No
		}
		return strconv.Itoa(i + 1)
	}},
	{"Title", 12, func(_ int, p model.Project) string { return p.Title }},
	{"Assignee", 10, func(_ int, p model.Project) string { return p.Assignee }},
	{"Condition", 9, func(_ int, p model.Project) string { return p.Condition }},
	{"Start", 8, func(_ int, p model.Project) string { return p.Start }},
	{"Last update", 11, func(_ int, p model.Project) string { return p.LastUpdate }},
	{"Last report", 11, func(_ int, p model.Project) string { return p.Report }},
	{"Next report", 11, func(_ int, p model.Project) string { return p.NextReport }},
	{"Notes", 10, func(_ int, p model.Project) string { return p.Notes }},
	{"Name", 14, func(_ int, p model.Project) string { return p.DisplayName() }},
}

func newProjectsTable() table.Model {
	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	t.SetStyles(s)
	return t
}

// columnsFor gives every column its minimum width and hands spare space to Title,
// Notes and Name.
func columnsFor(width int) []table.Column {
	cols := make([]table.Column, len(projectColumns))
	used := 0
	for i, c := range projectColumns {
		cols[i] = table.Column{Title: c.title, Width: c.min}
		// Cell padding is one column each side.
		used += c.min + 2
	}
	if spare := width - used; spare > 0 {
		grow := []int{1, 8, 9}
		for i, idx := range grow {
			share := spare / len(grow)
			if i == len(grow)-1 {
				share = spare - share*(len(grow)-1)
			}
			cols[idx].Width += share
		}
	}
	return cols
}

func projectRows(projects []model.Project) []table.Row {
	rows := make([]table.Row, 0, len(projects))
	for i, p := range projects {
		row := make(table.Row, len(projectColumns))
		for j, c := range projectColumns {
			// Table cells are single-line.
			row[j] = strings.ReplaceAll(c.value(i, p), "\n", " ")
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *appModel) refreshProjects() {
	m.projects.SetRows(projectRows(m.core.Projects()))
	if n := m.core.Len(); n > 0 && m.projects.Cursor() >= n {
		m.projects.SetCursor(n - 1)
	}
}

func (m *appModel) layoutProjects() {
	m.projects.SetColumns(columnsFor(m.width))
	m.projects.SetWidth(m.width)
	// header(2) + footer(2) + detail
	h := m.height - 4 - detailHeight
	if h < 3 {
		h = 3
	}
	m.projects.SetHeight(h)
}

func (m appModel) selectedProject() (model.Project, bool) {
	projects := m.core.Projects()
	i := m.projects.Cursor()
	if i < 0 || i >= len(projects) {
		return model.Project{}, false
	}
	return projects[i], true
}

func (m appModel) viewProjects() string {
	if m.core.Len() == 0 {
		return styleMuted().Render("No projects yet. Press a to add one.")
	}

	parts := []string{m.projects.View(), ""}
	if p, ok := m.selectedProject(); ok {
		label := styleChrome()
		parts = append(parts,
			label.Render("First Name: ")+p.FirstName,
			label.Render("Last Name:  ")+p.LastName,
		)
		if desc := renderMarkdown(p.Description, m.width-2); desc != "" {
			parts = append(parts, desc)
		}
	}
	return strings.Join(parts, "\n")
}
