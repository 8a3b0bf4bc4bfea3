package model

import "strings"

// Project is one tracked project. All fields are free-form strings and blank by
// default; the tags keep the stored layout compatible with existing collections.
type Project struct {
	No         string `json:"no" yaml:"no"`
	Title      string `json:"ptitle" yaml:"ptitle"`
	Assignee   string `json:"pma" yaml:"pma"`
	Condition  string `json:"pcondition" yaml:"pcondition"`
	Start      string `json:"pstart" yaml:"pstart"`
	LastUpdate string `json:"plastupdate" yaml:"plastupdate"`
	Report     string `json:"preport" yaml:"preport"`
	NextReport string `json:"pnextreport" yaml:"pnextreport"`
	Notes      string `json:"pnotes" yaml:"pnotes"`

	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	Description string `json:"description" yaml:"description"`
}

// HasName reports whether both name fields are set, the only requirement for
// committing a project.
func (p Project) HasName() bool {
	return p.FirstName != "" && p.LastName != ""
}

func (p Project) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Clone returns a copy of projects that shares no backing array with the input.
// A nil input yields an empty, non-nil slice.
func Clone(projects []Project) []Project {
	out := make([]Project, len(projects))
	copy(out, projects)
	return out
}
