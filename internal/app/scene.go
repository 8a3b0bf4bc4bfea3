package app

// Scene is the single active top-level view of the application.
type Scene int

const (
	SceneProjectsList Scene = iota
	SceneNewProjectForm
	SceneSettings
)

func (s Scene) String() string {
	switch s {
	case SceneProjectsList:
		return "projects"
	case SceneNewProjectForm:
		return "new-project"
	case SceneSettings:
		return "settings"
	default:
		return "unknown"
	}
}
