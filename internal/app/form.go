package app

import "projlist/internal/model"

type FormEventKind int

const (
	FormCommit FormEventKind = iota
	FormAbort
)

func (k FormEventKind) String() string {
	if k == FormCommit {
		return "commit"
	}
	return "abort"
}

// FormEvent is what a Form hands back to its owner when it finishes.
// Project is only meaningful for FormCommit.
type FormEvent struct {
	Kind    FormEventKind
	Project model.Project
}

// Form collects a new project's name and description. It never touches storage;
// the owner decides what to do with the event it produces.
type Form struct {
	draft model.Project
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Draft() model.Project { return f.draft }

// The setters accept any value, including empty strings. They always report a
// change so the caller re-renders.

func (f *Form) SetFirstName(v string) bool {
	f.draft.FirstName = v
	return true
}

func (f *Form) SetLastName(v string) bool {
	f.draft.LastName = v
	return true
}

func (f *Form) SetDescription(v string) bool {
	f.draft.Description = v
	return true
}

// CanSubmit gates the commit action. Renderers disable "Add New" while it is false.
func (f *Form) CanSubmit() bool {
	return f.draft.HasName()
}

// Submit hands off the draft and starts a fresh one. When the gate is closed it
// emits nothing and leaves the draft as is.
func (f *Form) Submit() (FormEvent, bool) {
	if !f.CanSubmit() {
		return FormEvent{}, false
	}
	ev := FormEvent{Kind: FormCommit, Project: f.draft}
	f.draft = model.Project{}
	return ev, true
}

// Abort signals the owner to discard the form. The draft is left untouched; the
// owner drops the whole form anyway.
func (f *Form) Abort() FormEvent {
	return FormEvent{Kind: FormAbort}
}
