package app

import "errors"

// ErrNothingToConfirm is returned when resolving without an open question
var ErrNothingToConfirm = errors.New("no confirmation pending")

// Confirmer asks the user a yes/no question. answer may be called later,
// after Confirm returns.
type Confirmer interface {
	Confirm(prompt string, answer func(yes bool))
}

// ConfirmFunc adapts a synchronous yes/no function
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string, answer func(bool)) {
	answer(f(prompt))
}

// AlwaysConfirm answers yes to everything
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// DeferredConfirmer holds the last question until Resolve is called
type DeferredConfirmer struct {
	prompt string
	answer func(bool)
}

// Confirm implements Confirmer. An unanswered earlier question is dropped.
func (d *DeferredConfirmer) Confirm(prompt string, answer func(bool)) {
	d.prompt = prompt
	d.answer = answer
}

// Pending returns the open question
func (d *DeferredConfirmer) Pending() (string, bool) {
	return d.prompt, d.answer != nil
}

// Resolve answers the open question
func (d *DeferredConfirmer) Resolve(yes bool) error {
	if d.answer == nil {
		return ErrNothingToConfirm
	}
	answer := d.answer
	d.prompt, d.answer = "", nil
	answer(yes)
	return nil
}
