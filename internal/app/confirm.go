package app

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Answer is a Confirmer with a fixed reply. Interactive front ends that collect
// the answer up front (a modal, a --yes flag) pass it through this.
type Answer bool

func (a Answer) Confirm(string) bool { return bool(a) }
