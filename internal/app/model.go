// Package app holds the application state machine: the project collection, the
// active scene and the add-project form, with persistence behind a Storage port.
package app

import (
	"context"
	"errors"
	"fmt"

	"projlist/internal/model"
	"projlist/internal/store"

	"go.uber.org/zap"
)

const (
	DefaultKey = "yew.crm.Projects"

	ClearPrompt = "Do you really want to clear the data?"
)

// ErrPersist marks a failed write of the project collection. Callers must not
// treat the triggering operation as done.
var ErrPersist = errors.New("persist projects")

// Storage is the key-value persistence port. Get reports store.ErrNotFound when
// key holds nothing; Delete of a missing key succeeds.
type Storage interface {
	Get(ctx context.Context, key string) ([]model.Project, error)
	Set(ctx context.Context, key string, projects []model.Project) error
	Delete(ctx context.Context, key string) error
}

type Model struct {
	storage Storage
	key     string
	log     *zap.Logger

	projects []model.Project
	scene    Scene

	// form is non-nil only while scene == SceneNewProjectForm.
	form *Form
}

type Option func(*Model)

func WithKey(key string) Option {
	return func(m *Model) {
		if key != "" {
			m.key = key
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func New(storage Storage, opts ...Option) *Model {
	m := &Model{
		storage:  storage,
		key:      DefaultKey,
		log:      zap.NewNop(),
		projects: []model.Project{},
		scene:    SceneProjectsList,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Initialize loads the persisted collection. Missing or unreadable data is not an
// error: the model starts empty.
func (m *Model) Initialize(ctx context.Context) {
	m.scene = SceneProjectsList
	m.form = nil

	projects, err := m.storage.Get(ctx, m.key)
	switch {
	case err == nil:
		m.projects = model.Clone(projects)
		m.log.Debug("projects loaded", zap.String("key", m.key), zap.Int("count", len(m.projects)))
	case errors.Is(err, store.ErrNotFound):
		m.projects = []model.Project{}
		m.log.Debug("no stored projects", zap.String("key", m.key))
	default:
		m.projects = []model.Project{}
		m.log.Warn("load projects failed; starting empty", zap.String("key", m.key), zap.Error(err))
	}
}

func (m *Model) Scene() Scene { return m.scene }

func (m *Model) Key() string { return m.key }

func (m *Model) Projects() []model.Project { return model.Clone(m.projects) }

func (m *Model) Len() int { return len(m.projects) }

// Form returns the live add-project form, or nil outside SceneNewProjectForm.
func (m *Model) Form() *Form { return m.form }

// SwitchTo always changes the scene. Entering the form scene starts a fresh form;
// leaving it drops the form with whatever draft it held.
func (m *Model) SwitchTo(s Scene) bool {
	if s == SceneNewProjectForm {
		m.form = NewForm()
	} else {
		m.form = nil
	}
	m.log.Debug("scene", zap.Stringer("from", m.scene), zap.Stringer("to", s))
	m.scene = s
	return true
}

// AddProject appends p and overwrites the stored collection. If the write fails
// the append is undone and the returned error wraps ErrPersist.
func (m *Model) AddProject(ctx context.Context, p model.Project) (bool, error) {
	next := append(model.Clone(m.projects), p)
	if err := m.storage.Set(ctx, m.key, next); err != nil {
		m.log.Error("store projects failed", zap.String("key", m.key), zap.Int("count", len(next)), zap.Error(err))
		return false, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	m.projects = next
	m.log.Info("project added", zap.String("name", p.DisplayName()), zap.Int("count", len(next)))
	return true, nil
}

// ClearProjects empties the collection and removes the stored key, but only when
// c confirms. A declined prompt changes nothing and reports false.
func (m *Model) ClearProjects(ctx context.Context, c Confirmer) (bool, error) {
	if c == nil || !c.Confirm(ClearPrompt) {
		m.log.Debug("clear declined")
		return false, nil
	}
	if err := m.storage.Delete(ctx, m.key); err != nil {
		m.log.Error("delete projects failed", zap.String("key", m.key), zap.Error(err))
		return false, fmt.Errorf("delete %s: %w", m.key, err)
	}
	n := len(m.projects)
	m.projects = []model.Project{}
	m.log.Info("projects cleared", zap.Int("removed", n))
	return true, nil
}

// HandleForm integrates the outcome of the add-project form and returns to the
// list. An abort never touches storage. A failed commit leaves the scene as is.
// Events arriving after the form scene was left are stale and ignored.
func (m *Model) HandleForm(ctx context.Context, ev FormEvent) (bool, error) {
	if m.scene != SceneNewProjectForm || m.form == nil {
		m.log.Debug("stale form event ignored", zap.Stringer("scene", m.scene))
		return false, nil
	}
	switch ev.Kind {
	case FormCommit:
		if _, err := m.AddProject(ctx, ev.Project); err != nil {
			return false, err
		}
	case FormAbort:
	default:
		return false, fmt.Errorf("unknown form event %d", ev.Kind)
	}
	return m.SwitchTo(SceneProjectsList), nil
}

// Msg is one of SwitchTo, AddProject or ClearProjects.
type Msg interface{ appMsg() }

type SwitchTo struct{ Scene Scene }

type AddProject struct{ Project model.Project }

type ClearProjects struct{ Confirm Confirmer }

func (SwitchTo) appMsg()      {}
func (AddProject) appMsg()    {}
func (ClearProjects) appMsg() {}

// Update applies msg and reports whether the rendered state changed.
func (m *Model) Update(ctx context.Context, msg Msg) (bool, error) {
	switch msg := msg.(type) {
	case SwitchTo:
		return m.SwitchTo(msg.Scene), nil
	case AddProject:
		return m.AddProject(ctx, msg.Project)
	case ClearProjects:
		return m.ClearProjects(ctx, msg.Confirm)
	default:
		return false, fmt.Errorf("unknown message %T", msg)
	}
}
